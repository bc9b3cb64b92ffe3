package marc8

import (
	"testing"

	"github.com/bgrewell/marc21/pkg/marcerr"
	"github.com/stretchr/testify/assert"
)

func TestDecodeASCIIPassthrough(t *testing.T) {
	got := Decode([]byte("Hello, World!"), Options{})
	assert.Equal(t, "Hello, World!", got)
}

// Acute accent (0xE1) followed by 'a' (0x61): without precomposition
// the decoder emits base then combiner in Unicode canonical order
// ("a" + COMBINING ACUTE ACCENT); with Precompose it NFC-composes to the
// single precomposed code point U+00E1.
func TestDecodeAnselAcuteDiacritic(t *testing.T) {
	raw := []byte{0xE1, 0x61}

	decomposed := Decode(raw, Options{})
	assert.Equal(t, "á", decomposed)

	precomposed := Decode(raw, Options{Precompose: true})
	assert.Equal(t, "á", precomposed)
}

func TestDecodeUnmappedCodeEmitsReplacementAndWarns(t *testing.T) {
	var diags []marcerr.Diagnostic
	got := Decode([]byte{0x01}, Options{Warn: func(d marcerr.Diagnostic) {
		diags = append(diags, d)
	}})
	assert.Equal(t, "�", got)
	assert.Len(t, diags, 1)
	assert.Equal(t, marcerr.WarnUnmappedMarc8CodePoint, diags[0].Kind)
}

func TestDecodeEscapeToAnselAndBack(t *testing.T) {
	// ESC ) E designates G1 = ANSEL, ESC s returns G0 to ASCII: the byte
	// 0xE1 is then read through G1 as the acute diacritic.
	raw := []byte{0x1B, 0x29, 'E', 0xE1, 0x61, 0x1B, 's', 'b'}
	got := Decode(raw, Options{})
	assert.Equal(t, "áb", got)
}

func TestDecodeEACCTripleByte(t *testing.T) {
	// ESC $ , 1 designates G0 as the EACC (triple-byte) set.
	raw := []byte{0x1B, '$', ',', '1', 0x21, 0x21, 0x21}
	got := Decode(raw, Options{})
	assert.Equal(t, "一", got)
}

func TestDecodeMalformedEscapeWarnsAndContinues(t *testing.T) {
	var diags []marcerr.Diagnostic
	got := Decode([]byte{0x1B}, Options{Warn: func(d marcerr.Diagnostic) {
		diags = append(diags, d)
	}})
	assert.Equal(t, "", got)
	assert.Len(t, diags, 1)
	assert.Equal(t, marcerr.WarnMalformedEscape, diags[0].Kind)
}

// Decoding two fields independently yields the same result as decoding
// either one alone: no state leak across Decode calls.
func TestDecodeIsStatelessPerCall(t *testing.T) {
	fieldA := []byte{0x1B, 0x29, 'E', 0xE1, 0x61} // switches G1 to ANSEL
	fieldB := []byte{0x41, 0xC1}                  // 'A' then high-bit 0x41 under the default G1=ANSEL

	wantB := Decode(fieldB, Options{})

	_ = Decode(fieldA, Options{})
	gotB := Decode(fieldB, Options{})

	assert.Equal(t, wantB, gotB, "decoding field A must not influence a later, independent decode of field B")
}
