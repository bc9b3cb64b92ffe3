package marc8

// entry is one translation table slot: the Unicode sequence it decodes
// to, and whether that sequence is a combining mark that must wait for
// a following base character before being emitted.
type entry struct {
	runes     []rune
	combining bool
}

var tables map[CharSet]map[byte]entry

func lookup(set CharSet, code byte) (entry, bool) {
	t, ok := tables[set]
	if !ok {
		return entry{}, false
	}
	e, ok := t[code]
	return e, ok
}

func base(r rune) entry      { return entry{runes: []rune{r}} }
func combining(r rune) entry { return entry{runes: []rune{r}, combining: true} }

// linearRange maps the printable 7-bit range [start,end] onto a
// contiguous Unicode block starting at runeBase. This is the approach
// used for the registered sets this module does not spell out letter by
// letter (the script-specific blocks); it covers the common code
// positions in each set's registered range without claiming to be a
// complete transliteration table.
func linearRange(start, end byte, runeBase rune) map[byte]entry {
	m := make(map[byte]entry, int(end-start)+1)
	for c := start; c <= end; c++ {
		m[c] = base(runeBase + rune(c-start))
	}
	return m
}

func init() {
	tables = map[CharSet]map[byte]entry{}

	// Basic Latin (ASCII) is identical under both designator bytes.
	ascii := linearRange(0x20, 0x7E, 0x20)
	tables[SetBasicLatin] = ascii
	tables[SetBasicLatinAlt] = ascii

	tables[SetAnsel] = ansel()

	// Greek symbols (math/technical subset) and Basic Greek share the
	// same alphabetic block; Basic Greek additionally covers the full
	// printable range starting at capital alpha.
	tables[SetGreekSymbols] = linearRange(0x61, 0x76, 0x03B1) // alpha..
	tables[SetBasicGreek] = linearRange(0x41, 0x7A, 0x0391)

	tables[SetSubscripts] = linearRange('0', '9', 0x2080)
	tables[SetSuperscripts] = linearRange('0', '9', 0x2070)

	tables[SetBasicArabic] = linearRange(0x21, 0x7E, 0x0621)
	tables[SetExtArabic] = linearRange(0x21, 0x7E, 0x0671)
	tables[SetBasicHebrew] = linearRange(0x21, 0x7E, 0x05D0)
	tables[SetBasicCyrillic] = linearRange(0x41, 0x7A, 0x0410)
	tables[SetExtCyrillic] = linearRange(0x41, 0x7A, 0x0460)
}

// ansel returns the Extended Latin (ANSEL, designator 'E') table: the
// common special Latin letters in the 0xA0-0xBF range (here already
// masked to 0x20-0x3F) and the combining diacritics in the 0xE0-0xFE
// range (masked to 0x60-0x7E). The diacritic positions are this module's
// own assignment, with the acute accent at 0xE1.
func ansel() map[byte]entry {
	m := map[byte]entry{}

	// Special letters (non-combining).
	special := map[byte]rune{
		0x21: 0x0141, // Ł
		0x22: 0x00D8, // Ø
		0x23: 0x0110, // Đ
		0x24: 0x00DE, // Þ
		0x25: 0x00C6, // Æ
		0x26: 0x0152, // Œ
		0x27: 0x02BC, // ʼ modifier letter apostrophe
		0x28: 0x00B7, // middle dot
		0x29: 0x266D, // musical flat
		0x2A: 0x00AE, // registered sign (patron saint of abbreviations)
		0x2B: 0x00B1, // plus-minus
		0x31: 0x0142, // ł
		0x32: 0x00F8, // ø
		0x33: 0x0111, // đ
		0x34: 0x00FE, // þ
		0x35: 0x00E6, // æ
		0x36: 0x0153, // œ
		0x37: 0x02BB, // ʻ okina
		0x38: 0x0131, // ı dotless i
		0x39: 0x0237, // ȷ dotless j
		0x3A: 0x00A3, // £
		0x3B: 0x00F0, // ð
	}
	for code, r := range special {
		m[code] = base(r)
	}

	// Combining diacritics.
	diacritics := map[byte]rune{
		0x60: 0x0300, // grave
		0x61: 0x0301, // acute
		0x62: 0x0302, // circumflex
		0x63: 0x0303, // tilde
		0x64: 0x0304, // macron
		0x65: 0x0306, // breve
		0x66: 0x0307, // dot above
		0x67: 0x0308, // diaeresis
		0x68: 0x030C, // caron
		0x69: 0x030A, // ring above
		0x6A: 0x0315, // comma above right
		0x6B: 0x0312, // turned comma above
		0x6C: 0x031C, // left half ring below
		0x6D: 0x0313, // comma above
		0x6E: 0x0326, // comma below
		0x6F: 0x032E, // breve below
		0x70: 0x0332, // double underscore -> low line
		0x71: 0x0334, // tilde overlay
		0x72: 0x0319, // right half ring below (approx)
		0x73: 0x0324, // diaeresis below
		0x74: 0x0325, // ring below
		0x75: 0x0333, // double low line
		0x76: 0x0328, // ogonek
		0x77: 0x032F, // inverted breve below
		0x78: 0x0323, // dot below
		0x79: 0x0327, // cedilla
		0x7A: 0x0318, // left hook (approx)
		0x7C: 0x030B, // double acute accent
		0x7D: 0x0360, // double tilde
		0x7E: 0x0345, // iota subscript
	}
	for code, r := range diacritics {
		m[code] = combining(r)
	}

	return m
}

// eaccTable is a small, representative sample of the EACC (East Asian
// Character Code, designator '1') triple-byte repertoire. EACC assigns
// one code point per (plane, row, cell) triple across tens of thousands
// of CJK ideographs; this table covers enough of the low-plane
// repertoire to exercise the triple-byte consumption logic end to end,
// with unmapped codes falling back to U+FFFD per the decoder contract.
var eaccTable = map[uint32]rune{
	eaccKey(0x21, 0x21, 0x21): 0x4E00, // 一
	eaccKey(0x21, 0x21, 0x22): 0x4E8C, // 二
	eaccKey(0x21, 0x21, 0x23): 0x4E09, // 三
	eaccKey(0x21, 0x21, 0x24): 0x56DB, // 四
	eaccKey(0x21, 0x21, 0x25): 0x4E94, // 五
}
