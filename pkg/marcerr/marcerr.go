// Package marcerr defines the exhaustive set of error kinds the MARC 21
// codec can return. Every kind is a sentinel error, checkable with
// errors.Is, and callers that need the low-level context should unwrap
// the returned error with errors.Unwrap or fmt.Errorf's %w chain.
package marcerr

import "errors"

var (
	// ErrRecordLeaderInvalid is returned when the leader slice is shorter
	// than 24 bytes or otherwise fails the fixed-width invariant.
	ErrRecordLeaderInvalid = errors.New("marc21: record leader is invalid")

	// ErrBaseAddressNotFound is returned when leader bytes 12-16 parse to
	// a value <= 0.
	ErrBaseAddressNotFound = errors.New("marc21: base address of data not found")

	// ErrBaseAddressInvalid is returned when the base address points
	// beyond the end of the supplied buffer.
	ErrBaseAddressInvalid = errors.New("marc21: base address of data is invalid")

	// ErrTruncatedRecord is returned when the buffer is shorter than the
	// record length declared in leader bytes 0-4.
	ErrTruncatedRecord = errors.New("marc21: record is truncated")

	// ErrRecordDirectoryInvalid is returned when the directory's byte
	// count is not a multiple of 12, or when a directory entry points
	// outside the record's field data.
	ErrRecordDirectoryInvalid = errors.New("marc21: record directory is invalid")

	// ErrNoFieldsFound is returned when a decode produces zero fields, and
	// by the encoder when the record has no fields.
	ErrNoFieldsFound = errors.New("marc21: no fields found")

	// ErrFieldNotFound is returned when a removal is requested for a
	// field that is not present in the record.
	ErrFieldNotFound = errors.New("marc21: field not found")

	// ErrRecordTooLarge is returned by the encoder when a length cannot
	// be represented in its fixed-width decimal field (99999 bytes for
	// the whole record, 9999 bytes per field).
	ErrRecordTooLarge = errors.New("marc21: record too large to encode")

	// ErrInvalidUTF8 is returned under the strict UTF-8 handling policy
	// when field data is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("marc21: invalid utf-8 in field data")
)

// WarningKind enumerates the non-fatal conditions the decoder can report.
// Unlike the Err* sentinels above, a warning never aborts a decode.
type WarningKind string

const (
	WarnBadSubfieldCode        WarningKind = "bad_subfield_code"
	WarnIndicatorsMissing      WarningKind = "indicators_missing"
	WarnIndicatorsTruncated    WarningKind = "indicators_truncated"
	WarnIndicatorsOverlong     WarningKind = "indicators_overlong"
	WarnUnmappedMarc8CodePoint WarningKind = "unmapped_marc8_code_point"
	WarnMalformedEscape        WarningKind = "malformed_marc8_escape"
	WarnTagInvalid             WarningKind = "tag_invalid"
)

// Diagnostic is a structured, non-fatal record produced during decode. It
// is the "structured diagnostic record returned alongside results" option
// described for the decoder's diagnostic channel: Decode never discards
// this information, and never relies on a package-global logger to
// surface it.
type Diagnostic struct {
	Kind    WarningKind
	Tag     string
	Message string
}
