// Package field implements the two MARC 21 field variants: control fields
// (opaque textual data, no indicators or subfields) and data fields (two
// indicators plus an ordered list of subfields), each split between a
// fixed binary header and a variable trailing payload.
package field

import (
	"fmt"
)

// Wire byte constants for the MARC 21 transmission format.
const (
	SubfieldIndicator = 0x1F
	EndOfField        = 0x1E
)

// Encoding selects how a field's textual data is rendered to bytes when
// serializing. The MARC 21 codec only ever needs UTF-8 or single-byte
// (ISO-8859-1 / MARC-8-compatible) output; re-encoding Unicode back into
// stateful MARC-8 is out of scope for the encoder.
type Encoding int

const (
	EncodingISO88591 Encoding = iota
	EncodingUTF8
)

// Subfield is a single (code, value) pair within a data field. Multiple
// subfields may share the same code; order is significant and preserved.
type Subfield struct {
	Code  byte
	Value string
}

// Field is a tagged MARC 21 field. IsControlField() reports whether it
// holds opaque control data (Data) or indicators + Subfields.
type Field struct {
	Tag        string
	Data       string // control field only
	Indicator1 byte   // data field only
	Indicator2 byte   // data field only
	Subfields  []Subfield
	isControl  bool
}

// NewControlField builds a control field (tag < "010", no indicators, no
// subfields).
func NewControlField(tag, data string) *Field {
	return &Field{Tag: tag, Data: data, isControl: true}
}

// NewDataField builds a data field with the given indicators and ordered
// subfields. A missing indicator should be passed as ' '.
func NewDataField(tag string, ind1, ind2 byte, subfields ...Subfield) *Field {
	return &Field{Tag: tag, Indicator1: ind1, Indicator2: ind2, Subfields: subfields}
}

// IsControlField reports whether this field is the control variant.
func (f *Field) IsControlField() bool {
	return f.isControl
}

// Value returns the first subfield value matching code, if any.
func (f *Field) Value(code byte) (string, bool) {
	for _, sf := range f.Subfields {
		if sf.Code == code {
			return sf.Value, true
		}
	}
	return "", false
}

// Values returns all (code, value) pairs in stored order.
func (f *Field) Values() []Subfield {
	return f.Subfields
}

// Format concatenates all subfield values with single spaces, the helper
// used by higher-level cataloging accessors built on top of the core.
func (f *Field) Format() string {
	out := ""
	for i, sf := range f.Subfields {
		if i > 0 {
			out += " "
		}
		out += sf.Value
	}
	return out
}

// AsMarc serializes the field to its MARC 21 transmission-format bytes,
// including the trailing EndOfField terminator.
func (f *Field) AsMarc(enc Encoding) ([]byte, error) {
	if f.isControl {
		data, err := encodeText(f.Data, enc)
		if err != nil {
			return nil, err
		}
		return append(data, EndOfField), nil
	}

	out := []byte{f.Indicator1, f.Indicator2}
	for _, sf := range f.Subfields {
		value, err := encodeText(sf.Value, enc)
		if err != nil {
			return nil, err
		}
		out = append(out, SubfieldIndicator, sf.Code)
		out = append(out, value...)
	}
	out = append(out, EndOfField)
	return out, nil
}

func encodeText(s string, enc Encoding) ([]byte, error) {
	if enc == EncodingUTF8 {
		return []byte(s), nil
	}
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return nil, fmt.Errorf("field: rune %U has no single-byte representation", r)
		}
		out = append(out, byte(r))
	}
	return out, nil
}

// RawSubfield is the byte-oriented counterpart of Subfield, used when a
// record is decoded with character conversion disabled.
type RawSubfield struct {
	Code  byte
	Value []byte
}

// RawField mirrors Field but carries undecoded byte sequences instead of
// text, for callers that decode with ToUnicode=false.
type RawField struct {
	Tag        string
	Data       []byte
	Indicator1 byte
	Indicator2 byte
	Subfields  []RawSubfield
	isControl  bool
}

// NewRawControlField builds a raw control field.
func NewRawControlField(tag string, data []byte) *RawField {
	return &RawField{Tag: tag, Data: data, isControl: true}
}

// NewRawDataField builds a raw data field.
func NewRawDataField(tag string, ind1, ind2 byte, subfields ...RawSubfield) *RawField {
	return &RawField{Tag: tag, Indicator1: ind1, Indicator2: ind2, Subfields: subfields}
}

// IsControlField reports whether this field is the control variant.
func (f *RawField) IsControlField() bool {
	return f.isControl
}

// AsMarc serializes the raw field's bytes as-is; raw values are assumed
// to already be in their final on-wire representation.
func (f *RawField) AsMarc() []byte {
	if f.isControl {
		return append(append([]byte{}, f.Data...), EndOfField)
	}
	out := []byte{f.Indicator1, f.Indicator2}
	for _, sf := range f.Subfields {
		out = append(out, SubfieldIndicator, sf.Code)
		out = append(out, sf.Value...)
	}
	out = append(out, EndOfField)
	return out
}
