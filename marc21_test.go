package marc21

import (
	"testing"

	"github.com/bgrewell/marc21/pkg/encoding"
	"github.com/bgrewell/marc21/pkg/field"
	"github.com/bgrewell/marc21/pkg/leader"
	"github.com/bgrewell/marc21/pkg/marcerr"
	"github.com/bgrewell/marc21/pkg/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A minimal record with a single control field: encoding recomputes the
// leader's length and base-address fields from scratch, and decoding the
// result must recover the original field value exactly.
func TestEncodeDecodeControlFieldRoundTrip(t *testing.T) {
	r := New()
	r.AddField(field.NewControlField("001", "ocm12345"))

	out, err := r.Encode()
	require.NoError(t, err)

	declaredLen := encoding.UnmarshalDecimal(out[0:5])
	assert.Equal(t, len(out), declaredLen)

	got, err := Decode(out)
	require.NoError(t, err)
	val, ok := got.GetField("001")
	require.True(t, ok)
	assert.Equal(t, "ocm12345", val.Data)
}

// A data field with two indicators and several subfields: order and
// codes must survive a round trip, and the field's on-wire bytes must
// begin with the indicator pair followed by the first subfield marker.
func TestEncodeDecodeDataFieldRoundTrip(t *testing.T) {
	r := New()
	r.Leader.SetCharacterCodingScheme('a')
	f := field.NewDataField("245", '1', '0',
		field.Subfield{Code: 'a', Value: "Hello "},
		field.Subfield{Code: 'b', Value: "World /"},
		field.Subfield{Code: 'c', Value: "Anon."},
	)
	r.AddField(f)

	fieldBytes, err := f.AsMarc(field.EncodingUTF8)
	require.NoError(t, err)
	assert.Equal(t, []byte{'1', '0', field.SubfieldIndicator, 'a'}, fieldBytes[:4])

	out, err := r.Encode()
	require.NoError(t, err)

	got, err := Decode(out, option.WithFileEncoding("utf-8"))
	require.NoError(t, err)
	df, ok := got.GetField("245")
	require.True(t, ok)
	assert.Equal(t, byte('1'), df.Indicator1)
	assert.Equal(t, byte('0'), df.Indicator2)
	assert.Equal(t, []field.Subfield{
		{Code: 'a', Value: "Hello "},
		{Code: 'b', Value: "World /"},
		{Code: 'c', Value: "Anon."},
	}, df.Values())
}

// A data field with no indicator bytes at all: the decoder repairs
// both indicators to spaces and records a warning rather than failing.
func TestDecodeMissingIndicatorsRepaired(t *testing.T) {
	content := []byte{field.SubfieldIndicator, 'a', 'X', field.EndOfField}
	data := buildRecord(t, "245", content)

	r, err := Decode(data)
	require.NoError(t, err)

	f, ok := r.GetField("245")
	require.True(t, ok)
	assert.Equal(t, byte(' '), f.Indicator1)
	assert.Equal(t, byte(' '), f.Indicator2)
	v, ok := f.Value('a')
	require.True(t, ok)
	assert.Equal(t, "X", v)

	require.Len(t, r.Diagnostics, 1)
	assert.Equal(t, marcerr.WarnIndicatorsMissing, r.Diagnostics[0].Kind)

	// Re-encoding always produces exactly two indicator bytes.
	reenc, err := f.AsMarc(field.EncodingISO88591)
	require.NoError(t, err)
	assert.Equal(t, byte(' '), reenc[0])
	assert.Equal(t, byte(' '), reenc[1])
}

// A subfield code byte that isn't ASCII: the decoder normalizes it
// via NFKD decomposition to the nearest ASCII letter and warns.
func TestDecodeNonASCIISubfieldCodeNormalized(t *testing.T) {
	// 0xC3 0xA1 is the UTF-8 encoding of U+00E1 ("á"); NFKD decomposes it
	// to "a" plus a combining acute accent.
	content := []byte{' ', ' ', field.SubfieldIndicator, 0xC3, 0xA1, 'X', field.EndOfField}
	data := buildRecord(t, "500", content)

	r, err := Decode(data)
	require.NoError(t, err)

	f, ok := r.GetField("500")
	require.True(t, ok)
	v, ok := f.Value('a')
	require.True(t, ok)
	assert.Equal(t, "X", v)

	require.Len(t, r.Diagnostics, 1)
	assert.Equal(t, marcerr.WarnBadSubfieldCode, r.Diagnostics[0].Kind)
}

// A declared record length longer than the supplied buffer.
func TestDecodeTruncatedRecord(t *testing.T) {
	r := New()
	r.AddField(field.NewControlField("001", "x"))
	out, err := r.Encode()
	require.NoError(t, err)

	var l leader.Leader = leader.New(out[:leader.Len])
	l.SetRecordLength(len(out) + 100)
	copy(out[:leader.Len], l.Bytes())

	_, err = Decode(out)
	assert.ErrorIs(t, err, marcerr.ErrTruncatedRecord)
}

// Ordered insertion keeps the field sequence numerically sorted by tag.
func TestAddOrderedFieldKeepsTagsSorted(t *testing.T) {
	r := New()
	r.AddOrderedField(field.NewControlField("500", ""))
	r.AddOrderedField(field.NewControlField("100", ""))
	r.AddOrderedField(field.NewControlField("245", ""))

	var tags []string
	for _, f := range r.Fields {
		tags = append(tags, f.Tag)
	}
	assert.Equal(t, []string{"100", "245", "500"}, tags)
}

func TestRemoveFieldAndRemoveFields(t *testing.T) {
	r := New()
	r.AddField(field.NewControlField("001", "a"))
	r.AddField(field.NewDataField("650", ' ', ' ', field.Subfield{Code: 'a', Value: "x"}))
	r.AddField(field.NewDataField("650", ' ', ' ', field.Subfield{Code: 'a', Value: "y"}))

	require.NoError(t, r.RemoveField("001"))
	assert.ErrorIs(t, r.RemoveField("001"), marcerr.ErrFieldNotFound)

	n := r.RemoveFields("650")
	assert.Equal(t, 2, n)
	assert.Empty(t, r.GetFields("650"))
}

func TestDecodeShortBufferIsLeaderInvalid(t *testing.T) {
	_, err := Decode([]byte("short"))
	assert.ErrorIs(t, err, marcerr.ErrRecordLeaderInvalid)
}

// buildRecord assembles a minimal, self-consistent one-field record
// buffer with the leader's length and base-address recomputed, so tests
// can focus on the single field under test without hand-deriving offsets.
func buildRecord(t *testing.T, tag string, fieldContent []byte) []byte {
	t.Helper()
	dir := append([]byte(tag), encoding.MarshalDecimal(len(fieldContent), 4)...)
	dir = append(dir, encoding.MarshalDecimal(0, 5)...)
	dir = append(dir, field.EndOfField)

	payload := append(append([]byte{}, fieldContent...), 0x1D)

	baseAddress := leader.Len + len(dir)
	recordLength := baseAddress + len(payload)

	l := leader.NewDefault()
	l.SetRecordLength(recordLength)
	l.SetBaseAddress(baseAddress)

	out := make([]byte, 0, recordLength)
	out = append(out, l.Bytes()...)
	out = append(out, dir...)
	out = append(out, payload...)
	return out
}
