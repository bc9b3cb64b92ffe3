package marc8

// parseEscape interprets the escape sequence starting at data[i] (which
// must be 0x1B) and returns how many bytes it consumes and a function
// that applies its effect to the decoder state. ok is false when the
// sequence is truncated or otherwise malformed; consumed is still the
// caller's best guess at how many bytes to skip.
func parseEscape(data []byte, i int) (consumed int, apply func(*decoderState), ok bool) {
	if i+1 >= len(data) {
		return 1, nil, false
	}
	b1 := data[i+1]

	switch b1 {
	case 's':
		return 2, func(st *decoderState) { st.g0, st.g0Multi = SetBasicLatin, false }, true
	case 'g':
		return 2, func(st *decoderState) { st.g0, st.g0Multi = SetGreekSymbols, false }, true
	case 'b':
		return 2, func(st *decoderState) { st.g0, st.g0Multi = SetSubscripts, false }, true
	case 'p':
		return 2, func(st *decoderState) { st.g0, st.g0Multi = SetSuperscripts, false }, true
	case '(', ',':
		if i+2 >= len(data) {
			return 2, nil, false
		}
		xx := CharSet(data[i+2])
		return 3, func(st *decoderState) { st.g0, st.g0Multi = xx, false }, true
	case ')', '-':
		if i+2 >= len(data) {
			return 2, nil, false
		}
		xx := CharSet(data[i+2])
		return 3, func(st *decoderState) { st.g1, st.g1Multi = xx, false }, true
	case '$':
		if i+2 >= len(data) {
			return 2, nil, false
		}
		if data[i+2] == ',' {
			if i+3 >= len(data) {
				return 3, nil, false
			}
			xx := CharSet(data[i+3])
			return 4, func(st *decoderState) { st.g0, st.g0Multi = xx, true }, true
		}
		xx := CharSet(data[i+2])
		return 3, func(st *decoderState) { st.g1, st.g1Multi = xx, true }, true
	default:
		// Short form: ESC xx designates G0 = set xx directly.
		xx := CharSet(b1)
		return 2, func(st *decoderState) { st.g0, st.g0Multi = xx, false }, true
	}
}
