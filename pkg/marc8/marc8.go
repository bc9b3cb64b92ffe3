// Package marc8 implements a stateful decoder from MARC-8, the ISO
// 2022-family 8-bit encoding historically used by MARC 21 records, to
// Unicode. It honors G0/G1 designator and single-shift escape sequences,
// the triple-byte EACC East Asian mode, and MARC's convention of storing
// combining diacritics before their base character.
//
// State lives entirely in a decoderState created fresh for each Decode
// call: stateful per call, but it never persists across calls. The
// character tables themselves are package-level and immutable, built
// once at init.
package marc8

import (
	"fmt"

	"github.com/bgrewell/marc21/pkg/marcerr"
	"golang.org/x/text/unicode/norm"
)

// CharSet identifies one of the registered MARC-8 graphic character sets
// by its designator byte, e.g. 'E' for ANSEL.
type CharSet byte

const (
	SetBasicLatin    CharSet = 'B'
	SetBasicLatinAlt CharSet = 's'
	SetAnsel         CharSet = 'E'
	SetGreekSymbols  CharSet = 'g'
	SetSubscripts    CharSet = 'b'
	SetSuperscripts  CharSet = 'p'
	SetBasicArabic   CharSet = '3'
	SetExtArabic     CharSet = '4'
	SetBasicHebrew   CharSet = '2'
	SetBasicCyrillic CharSet = 'N'
	SetExtCyrillic   CharSet = 'Q'
	SetBasicGreek    CharSet = 'S'
	SetEACC          CharSet = '1'
)

// Options configures a single Decode call.
type Options struct {
	// Precompose requests NFC composition of base+combining sequences
	// into a single precomposed code point where one is registered
	// (e.g. "a" + COMBINING ACUTE ACCENT -> "á"). When false, the
	// decoder emits base and combiners separately, already in Unicode
	// canonical (base-then-combiner) order.
	Precompose bool

	// Warn receives one Diagnostic per unmapped code point or malformed
	// escape sequence encountered. It may be nil, in which case warnings
	// are silently discarded (the caller is responsible for routing this
	// to a logr.Logger or equivalent if it wants them).
	Warn func(marcerr.Diagnostic)
}

type decoderState struct {
	g0, g1         CharSet
	g0Multi        bool
	g1Multi        bool
}

// Decode translates a MARC-8 byte sequence to a Unicode string. It is a
// total function: unmapped code points become U+FFFD and malformed
// escape sequences are skipped, both reported through Options.Warn
// rather than causing an error return.
func Decode(data []byte, opts Options) string {
	warn := opts.Warn
	if warn == nil {
		warn = func(marcerr.Diagnostic) {}
	}

	st := &decoderState{g0: SetBasicLatin, g1: SetAnsel}
	var out []rune
	var pending []rune

	// emitBase appends a base character followed by any diacritics that
	// were queued ahead of it in the source stream, restoring Unicode's
	// base-then-combiner canonical order from MARC-8's combiner-then-base
	// storage order.
	emitBase := func(runes ...rune) {
		out = append(out, runes...)
		out = append(out, pending...)
		pending = pending[:0]
	}

	i := 0
	for i < len(data) {
		b := data[i]

		if b == 0x1B {
			consumed, apply, ok := parseEscape(data, i)
			if !ok {
				warn(marcerr.Diagnostic{
					Kind:    marcerr.WarnMalformedEscape,
					Message: fmt.Sprintf("malformed MARC-8 escape sequence at byte offset %d", i),
				})
				if consumed < 1 {
					consumed = 1
				}
				i += consumed
				continue
			}
			apply(st)
			i += consumed
			continue
		}

		highBit := b&0x80 != 0
		code := b & 0x7F

		set := st.g0
		multi := st.g0Multi
		if highBit {
			set = st.g1
			multi = st.g1Multi
		}

		if multi {
			if i+2 >= len(data) {
				warn(marcerr.Diagnostic{
					Kind:    marcerr.WarnUnmappedMarc8CodePoint,
					Message: fmt.Sprintf("truncated EACC sequence at byte offset %d", i),
				})
				emitBase(0xFFFD)
				break
			}
			key := eaccKey(data[i]&0x7F, data[i+1]&0x7F, data[i+2]&0x7F)
			r, ok := eaccTable[key]
			if ok {
				emitBase(r)
			} else {
				warn(marcerr.Diagnostic{
					Kind:    marcerr.WarnUnmappedMarc8CodePoint,
					Message: fmt.Sprintf("unmapped EACC code point %06x", key),
				})
				emitBase(0xFFFD)
			}
			i += 3
			continue
		}

		e, ok := lookup(set, code)
		if !ok {
			warn(marcerr.Diagnostic{
				Kind:    marcerr.WarnUnmappedMarc8CodePoint,
				Message: fmt.Sprintf("unmapped MARC-8 code point 0x%02x in set %q", code, rune(set)),
			})
			emitBase(0xFFFD)
			i++
			continue
		}

		if e.combining {
			pending = append(pending, e.runes...)
		} else {
			emitBase(e.runes...)
		}
		i++
	}
	// Trailing combiners with no following base are emitted as-is.
	out = append(out, pending...)

	s := string(out)
	if opts.Precompose {
		s = norm.NFC.String(s)
	}
	return s
}

func eaccKey(b0, b1, b2 byte) uint32 {
	return uint32(b0)<<16 | uint32(b1)<<8 | uint32(b2)
}
