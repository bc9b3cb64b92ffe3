package marc21

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bgrewell/marc21/pkg/encoding"
	"github.com/bgrewell/marc21/pkg/field"
	"github.com/bgrewell/marc21/pkg/leader"
	"github.com/bgrewell/marc21/pkg/logging"
	"github.com/bgrewell/marc21/pkg/marc8"
	"github.com/bgrewell/marc21/pkg/marcerr"
	"github.com/bgrewell/marc21/pkg/option"
	"github.com/bgrewell/marc21/pkg/validation"
	"golang.org/x/text/unicode/norm"
)

const directoryEntryLen = 12

// Decode parses a single ISO 2709 record buffer into a Record, following
// the usual record-validation order: leader, base address and declared
// length are validated first, then the directory is walked to slice out each
// field's bytes and dispatch it to the control- or data-field path.
// Malformations the wire format is known to tolerate (missing
// indicators, non-ASCII subfield codes, unmapped MARC-8 code points)
// are repaired in place and recorded as Diagnostics rather than failing
// the decode. Structural violations return an error, as does invalid
// UTF-8 in any field under the strict UTF-8 handling policy.
func Decode(data []byte, opts ...option.DecodeOption) (*Record, error) {
	o := option.DefaultDecodeOptions()
	for _, opt := range opts {
		opt(o)
	}
	log := logging.NewLogger(o.Logger)

	if len(data) < leader.Len {
		err := fmt.Errorf("marc21: decoding leader: %w", marcerr.ErrRecordLeaderInvalid)
		log.Error(err, "decode failed", "bytes", len(data))
		return nil, err
	}
	ld, err := leader.NewStrict(data[:leader.Len])
	if err != nil {
		wrapped := fmt.Errorf("marc21: decoding leader: %w", marcerr.ErrRecordLeaderInvalid)
		log.Error(wrapped, "decode failed")
		return nil, wrapped
	}

	baseAddress := ld.BaseAddress()
	if baseAddress <= 0 {
		log.Error(marcerr.ErrBaseAddressNotFound, "decode failed")
		return nil, marcerr.ErrBaseAddressNotFound
	}
	if baseAddress >= len(data) {
		log.Error(marcerr.ErrBaseAddressInvalid, "decode failed", "baseAddress", baseAddress, "bytes", len(data))
		return nil, marcerr.ErrBaseAddressInvalid
	}

	declared := ld.RecordLength()
	if len(data) < declared {
		err := fmt.Errorf("marc21: declared length %d, got %d bytes: %w", declared, len(data), marcerr.ErrTruncatedRecord)
		log.Error(err, "decode failed")
		return nil, err
	}

	useUTF8 := ld.CharacterCodingScheme() == 'a' || o.ForceUTF8

	dirBytes := data[leader.Len : baseAddress-1]
	if len(dirBytes)%directoryEntryLen != 0 {
		err := fmt.Errorf("marc21: directory length %d is not a multiple of %d: %w", len(dirBytes), directoryEntryLen, marcerr.ErrRecordDirectoryInvalid)
		log.Error(err, "decode failed")
		return nil, err
	}

	r := &Record{Leader: ld, ForceUTF8: o.ForceUTF8}
	fieldData := data[baseAddress:]

	numEntries := len(dirBytes) / directoryEntryLen
	for i := 0; i < numEntries; i++ {
		entry := dirBytes[i*directoryEntryLen : (i+1)*directoryEntryLen]
		tag := string(entry[0:3])
		length := encoding.UnmarshalDecimal(entry[3:7])
		offset := encoding.UnmarshalDecimal(entry[7:12])

		start := offset
		end := offset + length
		if start < 0 || end > len(fieldData) || start > end {
			err := fmt.Errorf("marc21: directory entry %d for tag %q is out of bounds: %w", i, tag, marcerr.ErrRecordDirectoryInvalid)
			log.Error(err, "decode failed", "entry", i, "tag", tag)
			return nil, err
		}
		raw := fieldData[start:end]
		if n := len(raw); n > 0 && raw[n-1] == field.EndOfField {
			raw = raw[:n-1]
		}

		if !validation.ValidTag(tag) {
			r.diag(marcerr.Diagnostic{Kind: marcerr.WarnTagInvalid, Tag: tag, Message: fmt.Sprintf("directory tag %q is not a well-formed 3-character tag", tag)}, log)
		}

		if validation.IsControlTag(tag) {
			if !o.ToUnicode {
				r.RawFields = append(r.RawFields, field.NewRawControlField(tag, append([]byte{}, raw...)))
				continue
			}
			text, diags, derr := decodeFieldText(raw, useUTF8, o)
			if derr != nil {
				err := fmt.Errorf("marc21: decoding field %q: %w", tag, derr)
				log.Error(err, "decode failed", "tag", tag)
				return nil, err
			}
			r.recordDiagnostics(tag, diags, log)
			r.Fields = append(r.Fields, field.NewControlField(tag, text))
			continue
		}

		if err := r.decodeDataField(tag, raw, useUTF8, o, log); err != nil {
			log.Error(err, "decode failed", "tag", tag)
			return nil, err
		}
	}

	if len(r.Fields) == 0 && len(r.RawFields) == 0 {
		log.Error(marcerr.ErrNoFieldsFound, "decode failed")
		return nil, marcerr.ErrNoFieldsFound
	}
	return r, nil
}

func (r *Record) decodeDataField(tag string, raw []byte, useUTF8 bool, o *option.DecodeOptions, log *logging.Logger) error {
	chunks := bytes.Split(raw, []byte{field.SubfieldIndicator})
	indBytes := chunks[0]
	subfieldChunks := chunks[1:]

	var ind1, ind2 byte = ' ', ' '
	switch len(indBytes) {
	case 0:
		r.diag(marcerr.Diagnostic{Kind: marcerr.WarnIndicatorsMissing, Tag: tag, Message: "data field has no indicator bytes"}, log)
	case 1:
		ind1 = indBytes[0]
		r.diag(marcerr.Diagnostic{Kind: marcerr.WarnIndicatorsTruncated, Tag: tag, Message: "data field has only one indicator byte"}, log)
	case 2:
		ind1, ind2 = indBytes[0], indBytes[1]
	default:
		ind1, ind2 = indBytes[0], indBytes[1]
		r.diag(marcerr.Diagnostic{Kind: marcerr.WarnIndicatorsOverlong, Tag: tag, Message: fmt.Sprintf("data field has %d indicator bytes, expected 2", len(indBytes))}, log)
	}

	if !o.ToUnicode {
		rawSubfields := make([]field.RawSubfield, 0, len(subfieldChunks))
		for _, chunk := range subfieldChunks {
			if len(chunk) == 0 {
				continue
			}
			code, value := splitRawSubfieldCode(chunk, tag, r, log)
			rawSubfields = append(rawSubfields, field.RawSubfield{Code: code, Value: append([]byte{}, value...)})
		}
		r.RawFields = append(r.RawFields, field.NewRawDataField(tag, ind1, ind2, rawSubfields...))
		return nil
	}

	subfields := make([]field.Subfield, 0, len(subfieldChunks))
	for _, chunk := range subfieldChunks {
		if len(chunk) == 0 {
			continue
		}
		code, valueBytes := splitRawSubfieldCode(chunk, tag, r, log)
		text, diags, err := decodeFieldText(valueBytes, useUTF8, o)
		if err != nil {
			return fmt.Errorf("marc21: decoding field %q: %w", tag, err)
		}
		r.recordDiagnostics(tag, diags, log)
		subfields = append(subfields, field.Subfield{Code: code, Value: text})
	}
	r.Fields = append(r.Fields, field.NewDataField(tag, ind1, ind2, subfields...))
	return nil
}

// splitRawSubfieldCode extracts the subfield code from chunk, repairing
// non-ASCII codes: the first character is decoded, decomposed under
// NFKD, and the first ASCII letter surviving that decomposition is
// used as the code.
func splitRawSubfieldCode(chunk []byte, tag string, r *Record, log *logging.Logger) (byte, []byte) {
	if chunk[0] < 0x80 {
		if !validation.ValidSubfieldCode(chunk[0]) {
			r.diag(marcerr.Diagnostic{
				Kind:    marcerr.WarnBadSubfieldCode,
				Tag:     tag,
				Message: fmt.Sprintf("subfield code byte %q is outside the a-z/0-9 range", chunk[0]),
			}, log)
		}
		return chunk[0], chunk[1:]
	}

	rn, size := utf8.DecodeRune(chunk)
	if rn == utf8.RuneError && size <= 1 {
		rn = rune(chunk[0])
		size = 1
	}

	code := byte('a')
	decomposed := norm.NFKD.String(string(rn))
	for _, c := range decomposed {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			if c >= 'A' && c <= 'Z' {
				c += 'a' - 'A'
			}
			code = byte(c)
			break
		}
	}
	r.diag(marcerr.Diagnostic{
		Kind:    marcerr.WarnBadSubfieldCode,
		Tag:     tag,
		Message: fmt.Sprintf("non-ASCII subfield code byte 0x%02x normalized to %q", chunk[0], code),
	}, log)
	return code, chunk[size:]
}

// decodeFieldText decodes raw field bytes to Unicode text per the
// encoding selected earlier: UTF-8 when useUTF8, MARC-8 translation for
// the default iso8859-1 file encoding, or a direct single-byte
// passthrough for any other named charset.
func decodeFieldText(raw []byte, useUTF8 bool, o *option.DecodeOptions) (string, []marcerr.Diagnostic, error) {
	if useUTF8 {
		return decodeUTF8(raw, o.UTF8Handling, o.HideUTF8Warnings)
	}

	switch strings.ToLower(o.FileEncoding) {
	case "", "iso8859-1":
		var diags []marcerr.Diagnostic
		warn := func(d marcerr.Diagnostic) {
			if !o.HideUTF8Warnings {
				diags = append(diags, d)
			}
		}
		text := marc8.Decode(raw, marc8.Options{Precompose: true, Warn: warn})
		return text, diags, nil
	default:
		runes := make([]rune, len(raw))
		for i, b := range raw {
			runes[i] = rune(b)
		}
		return string(runes), nil, nil
	}
}

func decodeUTF8(raw []byte, handling option.UTF8Handling, hideWarnings bool) (string, []marcerr.Diagnostic, error) {
	if utf8.Valid(raw) {
		return string(raw), nil, nil
	}
	switch handling {
	case option.UTF8Replace:
		var diags []marcerr.Diagnostic
		if !hideWarnings {
			diags = append(diags, marcerr.Diagnostic{Kind: marcerr.WarnUnmappedMarc8CodePoint, Message: "invalid utf-8 bytes replaced with U+FFFD"})
		}
		return strings.ToValidUTF8(string(raw), "�"), diags, nil
	case option.UTF8Ignore:
		return strings.ToValidUTF8(string(raw), ""), nil, nil
	default: // option.UTF8Strict
		return "", nil, fmt.Errorf("%w", marcerr.ErrInvalidUTF8)
	}
}

func (r *Record) diag(d marcerr.Diagnostic, log *logging.Logger) {
	r.Diagnostics = append(r.Diagnostics, d)
	if log != nil {
		log.Debug(d.Message, "kind", d.Kind, "tag", d.Tag)
	}
}

func (r *Record) recordDiagnostics(tag string, diags []marcerr.Diagnostic, log *logging.Logger) {
	for _, d := range diags {
		if d.Tag == "" {
			d.Tag = tag
		}
		r.diag(d, log)
	}
}
