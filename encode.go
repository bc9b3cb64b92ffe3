package marc21

import (
	"fmt"

	"github.com/bgrewell/marc21/pkg/encoding"
	"github.com/bgrewell/marc21/pkg/field"
	"github.com/bgrewell/marc21/pkg/leader"
	"github.com/bgrewell/marc21/pkg/logging"
	"github.com/bgrewell/marc21/pkg/marcerr"
	"github.com/bgrewell/marc21/pkg/option"
)

const (
	fieldLengthWidth = 4
	fieldOffsetWidth = 5
	maxFieldLength   = 9999
	maxFieldOffset   = 99999
	maxRecordLength  = 99999
)

// marcField is the subset of field.Field and field.RawField the encoder
// needs: a tag to key the directory entry and a byte serializer.
type marcField interface {
	fieldTag() string
	asMarc() ([]byte, error)
}

type textField struct {
	f   *field.Field
	enc field.Encoding
}

func (t textField) fieldTag() string      { return t.f.Tag }
func (t textField) asMarc() ([]byte, error) { return t.f.AsMarc(t.enc) }

type rawField struct{ f *field.RawField }

func (t rawField) fieldTag() string        { return t.f.Tag }
func (t rawField) asMarc() ([]byte, error) { return t.f.AsMarc(), nil }

// Encode serializes r to its ISO 2709 transmission-format bytes: each
// field is serialized and its bytes accumulated, directory entries are
// built alongside, and the leader's record length and base address are
// recomputed from scratch. They are never persisted as independent state.
func (r *Record) Encode(opts ...option.EncodeOption) ([]byte, error) {
	o := option.DefaultEncodeOptions()
	for _, opt := range opts {
		opt(o)
	}
	log := logging.NewLogger(o.Logger)

	useUTF8 := r.Leader.CharacterCodingScheme() == 'a' || r.ForceUTF8 || o.ForceUTF8
	enc := field.EncodingISO88591
	if useUTF8 {
		enc = field.EncodingUTF8
	}

	fields := r.marcFields(enc)
	if len(fields) == 0 {
		log.Error(marcerr.ErrNoFieldsFound, "encode failed")
		return nil, marcerr.ErrNoFieldsFound
	}

	var directory []byte
	var payload []byte
	offset := 0
	for _, mf := range fields {
		fieldBytes, err := mf.asMarc()
		if err != nil {
			wrapped := fmt.Errorf("marc21: encoding field %q: %w", mf.fieldTag(), err)
			log.Error(wrapped, "encode failed", "tag", mf.fieldTag())
			return nil, wrapped
		}
		if len(fieldBytes) > maxFieldLength {
			err := fmt.Errorf("marc21: field %q is %d bytes, exceeds %d-byte limit: %w", mf.fieldTag(), len(fieldBytes), maxFieldLength, marcerr.ErrRecordTooLarge)
			log.Error(err, "encode failed", "tag", mf.fieldTag())
			return nil, err
		}
		if offset > maxFieldOffset {
			err := fmt.Errorf("marc21: field %q offset %d exceeds fixed-width directory field: %w", mf.fieldTag(), offset, marcerr.ErrRecordTooLarge)
			log.Error(err, "encode failed", "tag", mf.fieldTag())
			return nil, err
		}

		directory = append(directory, tagBytes(mf.fieldTag())...)
		directory = append(directory, encoding.MarshalDecimal(len(fieldBytes), fieldLengthWidth)...)
		directory = append(directory, encoding.MarshalDecimal(offset, fieldOffsetWidth)...)

		payload = append(payload, fieldBytes...)
		offset += len(fieldBytes)
	}
	directory = append(directory, field.EndOfField)
	payload = append(payload, endOfRecord)

	baseAddress := leader.Len + len(directory)
	recordLength := baseAddress + len(payload)
	if recordLength > maxRecordLength {
		err := fmt.Errorf("marc21: record is %d bytes, exceeds %d-byte limit: %w", recordLength, maxRecordLength, marcerr.ErrRecordTooLarge)
		log.Error(err, "encode failed")
		return nil, err
	}

	out := r.Leader
	out.SetRecordLength(recordLength)
	out.SetBaseAddress(baseAddress)
	if useUTF8 {
		out.SetCharacterCodingScheme('a')
	}

	buf := make([]byte, 0, recordLength)
	buf = append(buf, out.Bytes()...)
	buf = append(buf, directory...)
	buf = append(buf, payload...)
	return buf, nil
}

const endOfRecord = 0x1D

func (r *Record) marcFields(enc field.Encoding) []marcField {
	if r.IsRaw() {
		out := make([]marcField, len(r.RawFields))
		for i, f := range r.RawFields {
			out[i] = rawField{f}
		}
		return out
	}
	out := make([]marcField, len(r.Fields))
	for i, f := range r.Fields {
		out[i] = textField{f: f, enc: enc}
	}
	return out
}

// tagBytes pads tag to the fixed 3-byte directory width: digits are
// zero-padded; non-digit tags are space-padded.
func tagBytes(tag string) []byte {
	if isAllDigitTag(tag) {
		return encoding.MarshalDecimal(atoiTag(tag), 3)
	}
	return encoding.MarshalString(tag, 3)
}

func isAllDigitTag(tag string) bool {
	if len(tag) == 0 {
		return false
	}
	for _, c := range tag {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func atoiTag(tag string) int {
	n := 0
	for _, c := range tag {
		n = n*10 + int(c-'0')
	}
	return n
}
