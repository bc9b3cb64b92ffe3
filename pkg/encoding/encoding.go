// Package encoding implements the small set of fixed-width byte encodings
// MARC 21 records use throughout the leader and directory: space-padded
// text fields and zero-padded decimal counters. Every other package that
// needs to read or write a fixed-width positional field goes through
// here, rather than re-implementing padding/truncation locally.
package encoding

import (
	"fmt"
	"strings"
)

// MarshalString encodes s as a byte slice of exactly padToLength bytes:
// truncated if too long, space-padded on the right if too short.
func MarshalString(s string, padToLength int) []byte {
	if len(s) > padToLength {
		s = s[:padToLength]
	}
	missingPadding := padToLength - len(s)
	s = s + strings.Repeat(" ", missingPadding)
	return []byte(s)
}

// MarshalDecimal encodes n as a zero-padded decimal field of exactly
// width bytes, as used by the leader's record-length and base-address
// positions and by each directory entry's length and starting-position
// fields. Negative values are clamped to zero; values that overflow
// width are truncated to its low-order digits, matching the leader's
// existing forceInvariants behaviour of always producing a fixed-width
// field rather than failing.
func MarshalDecimal(n int, width int) []byte {
	out := make([]byte, width)
	if n < 0 {
		n = 0
	}
	for i := width - 1; i >= 0; i-- {
		out[i] = byte('0' + n%10)
		n /= 10
	}
	return out
}

// UnmarshalDecimal decodes a decimal field. It stops at the first
// non-digit byte rather than failing, matching MARC readers' tolerance
// of directory entries from slightly malformed records.
func UnmarshalDecimal(data []byte) int {
	n := 0
	for _, c := range data {
		if c < '0' || c > '9' {
			return n
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// UnmarshalDecimalStrict is UnmarshalDecimal but rejects any non-digit
// byte outright, for contexts where a malformed counter should surface
// as an error rather than be silently truncated. The record decoder
// parses directory entries with the tolerant UnmarshalDecimal.
func UnmarshalDecimalStrict(data []byte) (int, error) {
	n := 0
	for _, c := range data {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("encoding: non-digit byte 0x%02x in decimal field %q", c, data)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
