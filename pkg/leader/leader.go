// Package leader implements the 24-byte MARC 21 record leader: a
// fixed-width header treated as a mutable byte buffer with named
// positional accessors, its binary positions read and written directly
// against a byte slice rather than through a tag-based codec.
package leader

import (
	"fmt"

	"github.com/bgrewell/marc21/pkg/encoding"
)

// Len is the fixed length of a MARC 21 leader in bytes.
const Len = 24

// EntryMap is the literal content of leader bytes 20-23, constant across
// every MARC 21 record.
const EntryMap = "4500"

// Leader is the 24-byte fixed-length header at the start of a MARC 21
// record. It is always exactly Len bytes; New and NewDefault both enforce
// this invariant so that every other accessor can safely index into it.
type Leader [Len]byte

// NewDefault returns a blank leader: every position space, with the
// constant positions (indicator count, subfield code count, entry map)
// already forced to their required values.
func NewDefault() Leader {
	var l Leader
	for i := range l {
		l[i] = ' '
	}
	l.forceInvariants()
	return l
}

// New builds a Leader from a byte slice. A slice shorter than Len is
// padded with spaces; a slice longer than Len is truncated. Either way,
// the constant-valued positions are forced to their required values,
// matching pymarc's behaviour of always overwriting bytes 10-11 and
// 20-23 regardless of what the caller supplied.
func New(raw []byte) Leader {
	var l Leader
	n := copy(l[:], raw)
	for i := n; i < Len; i++ {
		l[i] = ' '
	}
	l.forceInvariants()
	return l
}

// NewStrict builds a Leader from exactly Len bytes, failing if raw is not
// exactly that length. This is the constructor the record codec uses when
// decoding, where a short leader is a structural error rather than
// something to silently repair.
func NewStrict(raw []byte) (Leader, error) {
	var l Leader
	if len(raw) != Len {
		return l, fmt.Errorf("leader: expected %d bytes, got %d", Len, len(raw))
	}
	copy(l[:], raw)
	return l, nil
}

func (l *Leader) forceInvariants() {
	l[10] = '2'
	l[11] = '2'
	copy(l[20:24], EntryMap)
}

// Bytes returns the leader's 24-byte on-wire representation.
func (l Leader) Bytes() []byte {
	out := make([]byte, Len)
	copy(out, l[:])
	return out
}

func (l Leader) String() string {
	return string(l[:])
}

// RecordLength returns leader bytes 0-4 as decoded from the 5-digit
// zero-padded decimal field.
func (l Leader) RecordLength() int {
	return encoding.UnmarshalDecimal(l[0:5])
}

// SetRecordLength writes a 5-digit zero-padded decimal into bytes 0-4.
func (l *Leader) SetRecordLength(n int) {
	copy(l[0:5], encoding.MarshalDecimal(n, 5))
}

func (l Leader) Status() byte              { return l[5] }
func (l *Leader) SetStatus(b byte)         { l[5] = b }
func (l Leader) Type() byte                { return l[6] }
func (l *Leader) SetType(b byte)           { l[6] = b }
func (l Leader) BibliographicLevel() byte  { return l[7] }
func (l *Leader) SetBibliographicLevel(b byte) { l[7] = b }
func (l Leader) TypeOfControl() byte       { return l[8] }
func (l *Leader) SetTypeOfControl(b byte)  { l[8] = b }

// CharacterCodingScheme is byte 9: ' ' for MARC-8, 'a' for UTF-8.
func (l Leader) CharacterCodingScheme() byte { return l[9] }
func (l *Leader) SetCharacterCodingScheme(b byte) { l[9] = b }

// IndicatorCount is byte 10, always '2' in MARC 21.
func (l Leader) IndicatorCount() byte { return l[10] }

// SubfieldCodeCount is byte 11, always '2' in MARC 21.
func (l Leader) SubfieldCodeCount() byte { return l[11] }

// BaseAddress returns leader bytes 12-16 as the decoded base address of
// data (the offset from byte 0 where the directory ends and field data
// begins).
func (l Leader) BaseAddress() int {
	return encoding.UnmarshalDecimal(l[12:17])
}

// SetBaseAddress writes a 5-digit zero-padded decimal into bytes 12-16.
func (l *Leader) SetBaseAddress(n int) {
	copy(l[12:17], encoding.MarshalDecimal(n, 5))
}

func (l Leader) EncodingLevel() byte             { return l[17] }
func (l *Leader) SetEncodingLevel(b byte)        { l[17] = b }
func (l Leader) DescriptiveCatalogingForm() byte { return l[18] }
func (l *Leader) SetDescriptiveCatalogingForm(b byte) { l[18] = b }
func (l Leader) MultipartResourceLevel() byte    { return l[19] }
func (l *Leader) SetMultipartResourceLevel(b byte) { l[19] = b }

// EntryMapValue returns leader bytes 20-23, always the literal "4500".
func (l Leader) EntryMapValue() string { return string(l[20:24]) }
