// Package marc21 implements a bidirectional, byte-exact codec for the
// MARC 21 bibliographic record transmission format (ISO 2709), together
// with the MARC-8 character-encoding layer the format's older records
// depend on. It wires the leader, field, MARC-8 and ordering
// subpackages together into a single Decode/Encode surface over a
// Record aggregate.
package marc21

import (
	"fmt"

	"github.com/bgrewell/marc21/pkg/field"
	"github.com/bgrewell/marc21/pkg/leader"
	"github.com/bgrewell/marc21/pkg/marcerr"
	"github.com/bgrewell/marc21/pkg/ordering"
)

// Record is an in-memory MARC 21 bibliographic record: a Leader plus an
// ordered sequence of Fields. A Record decoded with ToUnicode disabled
// carries RawFields instead, and Fields is left nil; IsRaw reports which
// mode is in effect.
type Record struct {
	Leader leader.Leader

	// Fields holds text-decoded fields, in the order they appear on the
	// wire. Populated unless the record was decoded with ToUnicode=false.
	Fields []*field.Field

	// RawFields holds undecoded byte-oriented fields, populated only when
	// the record was decoded with ToUnicode=false.
	RawFields []*field.RawField

	// ForceUTF8 records whether this record was decoded (or should be
	// encoded) under a forced UTF-8 interpretation regardless of leader
	// byte 9. It is transient: it affects codec behavior but is not part
	// of the on-wire representation.
	ForceUTF8 bool

	// Diagnostics accumulates the non-fatal warnings produced by the most
	// recent Decode call on this record. It is the structured half of the
	// diagnostic channel; the other half is the caller-supplied logr
	// sink in option.DecodeOptions.Logger.
	Diagnostics []marcerr.Diagnostic
}

// New returns an empty Record with a default, invariant-forced leader.
func New() *Record {
	return &Record{Leader: leader.NewDefault()}
}

// IsRaw reports whether this record carries undecoded RawFields rather
// than text-decoded Fields.
func (r *Record) IsRaw() bool {
	return r.RawFields != nil
}

func (r *Record) tags() []string {
	if r.IsRaw() {
		tags := make([]string, len(r.RawFields))
		for i, f := range r.RawFields {
			tags[i] = f.Tag
		}
		return tags
	}
	tags := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		tags[i] = f.Tag
	}
	return tags
}

// AddField appends f to the end of the record, ignoring tag order.
func (r *Record) AddField(f *field.Field) {
	r.Fields = append(r.Fields, f)
}

// AddGroupedField inserts f at the position the "grouped" ordering policy
// computes: tags are compared by their leading digit only.
func (r *Record) AddGroupedField(f *field.Field) {
	r.insertOrdered(f, ordering.Grouped)
}

// AddOrderedField inserts f at the position the "ordered" policy
// computes: tags are compared as full 3-digit numbers.
func (r *Record) AddOrderedField(f *field.Field) {
	r.insertOrdered(f, ordering.Ordered)
}

func (r *Record) insertOrdered(f *field.Field, mode ordering.Mode) {
	idx := ordering.InsertIndex(r.tags(), f.Tag, mode)
	r.Fields = append(r.Fields, nil)
	copy(r.Fields[idx+1:], r.Fields[idx:])
	r.Fields[idx] = f
}

// GetFields returns every field whose tag matches one of tags, in stored
// order. With no arguments it returns every field.
func (r *Record) GetFields(tags ...string) []*field.Field {
	if len(tags) == 0 {
		return append([]*field.Field{}, r.Fields...)
	}
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}
	var out []*field.Field
	for _, f := range r.Fields {
		if want[f.Tag] {
			out = append(out, f)
		}
	}
	return out
}

// GetField returns the first field matching tag, if any.
func (r *Record) GetField(tag string) (*field.Field, bool) {
	for _, f := range r.Fields {
		if f.Tag == tag {
			return f, true
		}
	}
	return nil, false
}

// RemoveField removes the first field matching tag. It returns
// marcerr.ErrFieldNotFound if no field with that tag exists.
func (r *Record) RemoveField(tag string) error {
	for i, f := range r.Fields {
		if f.Tag == tag {
			r.Fields = append(r.Fields[:i:i], r.Fields[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("marc21: removing tag %q: %w", tag, marcerr.ErrFieldNotFound)
}

// RemoveFields removes every field matching tag and returns the count
// removed.
func (r *Record) RemoveFields(tag string) int {
	kept := r.Fields[:0:0]
	removed := 0
	for _, f := range r.Fields {
		if f.Tag == tag {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	r.Fields = kept
	return removed
}
