// Package validation implements the identifier-shape checks MARC 21
// field tags and subfield codes must satisfy.
package validation

import "regexp"

// ValidTag reports whether tag is a well-formed MARC 21 field tag: exactly
// three characters, each either a digit or an uppercase letter (tags like
// "LDR" or "AVA" appear in some local extensions alongside the numeric
// 001-999 range).
func ValidTag(tag string) bool {
	return tagRegexp.MatchString(tag)
}

var tagRegexp = regexp.MustCompile(`^[0-9A-Z]{3}$`)

// ValidSubfieldCode reports whether code is an allowed MARC 21 subfield
// delimiter code: a lowercase letter or digit. Uppercase letters and
// punctuation beyond those two ranges are not valid subfield codes,
// though malformed records may still contain them as data.
func ValidSubfieldCode(code byte) bool {
	return (code >= 'a' && code <= 'z') || (code >= '0' && code <= '9')
}

// IsControlTag reports whether tag identifies a control field: 00x tags
// carry no indicators or subfields.
func IsControlTag(tag string) bool {
	return len(tag) == 3 && tag[0] == '0' && tag[1] == '0'
}
