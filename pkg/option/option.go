// Package option implements the functional-options pattern the rest of
// this module threads the decoder/encoder configuration through.
package option

import (
	"io"

	"github.com/bgrewell/marc21/pkg/logging"
	"github.com/go-logr/logr"
)

// UTF8Handling selects the UTF-8 decode error policy.
type UTF8Handling string

const (
	UTF8Strict  UTF8Handling = "strict"
	UTF8Replace UTF8Handling = "replace"
	UTF8Ignore  UTF8Handling = "ignore"
)

// DecodeOptions configures a single Decode call.
type DecodeOptions struct {
	// ToUnicode, when false, skips text conversion entirely: decoded
	// fields retain their raw byte sequences (field.RawField).
	ToUnicode bool
	// ForceUTF8 treats the record as UTF-8 regardless of leader byte 9.
	// The decoded record keeps it as Record.ForceUTF8, so a later Encode
	// writes 'a' into leader byte 9; Decode itself leaves leader byte 9
	// as read, and New has no option that sets it.
	ForceUTF8 bool
	// HideUTF8Warnings suppresses MARC-8-to-Unicode replacement warnings.
	HideUTF8Warnings bool
	// UTF8Handling is the UTF-8 decode error policy.
	UTF8Handling UTF8Handling
	// FileEncoding is the default encoding used when leader byte 9 is
	// not 'a'. The value "iso8859-1" (or an empty string) selects MARC-8
	// translation; any other value decodes each byte as the code point of
	// the same number (ISO-8859-1), whatever charset the value names.
	FileEncoding string
	// Logger is the diagnostic sink warnings are written to. It is never
	// a package-global logger; the zero value defaults to logr.Discard().
	Logger logr.Logger
}

// DecodeOption mutates a DecodeOptions.
type DecodeOption func(*DecodeOptions)

// DefaultDecodeOptions mirrors pymarc's Record() constructor defaults.
func DefaultDecodeOptions() *DecodeOptions {
	return &DecodeOptions{
		ToUnicode:    true,
		UTF8Handling: UTF8Strict,
		FileEncoding: "iso8859-1",
		Logger:       logr.Discard(),
	}
}

func WithToUnicode(toUnicode bool) DecodeOption {
	return func(o *DecodeOptions) { o.ToUnicode = toUnicode }
}

func WithForceUTF8(forceUTF8 bool) DecodeOption {
	return func(o *DecodeOptions) { o.ForceUTF8 = forceUTF8 }
}

func WithHideUTF8Warnings(hide bool) DecodeOption {
	return func(o *DecodeOptions) { o.HideUTF8Warnings = hide }
}

func WithUTF8Handling(h UTF8Handling) DecodeOption {
	return func(o *DecodeOptions) { o.UTF8Handling = h }
}

func WithFileEncoding(encoding string) DecodeOption {
	return func(o *DecodeOptions) { o.FileEncoding = encoding }
}

func WithLogger(logger logr.Logger) DecodeOption {
	return func(o *DecodeOptions) { o.Logger = logger }
}

// WithSimpleLogger is a convenience over WithLogger: it builds a
// colored, human-readable logr.Logger writing to w at the given
// verbosity, for callers that want readable diagnostic output without
// wiring their own logr.LogSink.
func WithSimpleLogger(w io.Writer, verbosity int, useColor bool) DecodeOption {
	return WithLogger(logging.NewSimpleLogger(w, verbosity, useColor))
}

// EncodeOptions configures a single Encode call.
type EncodeOptions struct {
	// ForceUTF8 encodes as UTF-8 regardless of leader byte 9.
	ForceUTF8 bool
	Logger    logr.Logger
}

// EncodeOption mutates an EncodeOptions.
type EncodeOption func(*EncodeOptions)

func DefaultEncodeOptions() *EncodeOptions {
	return &EncodeOptions{Logger: logr.Discard()}
}

func WithEncodeForceUTF8(forceUTF8 bool) EncodeOption {
	return func(o *EncodeOptions) { o.ForceUTF8 = forceUTF8 }
}

func WithEncodeLogger(logger logr.Logger) EncodeOption {
	return func(o *EncodeOptions) { o.Logger = logger }
}

// WithEncodeSimpleLogger mirrors WithSimpleLogger for EncodeOptions.
func WithEncodeSimpleLogger(w io.Writer, verbosity int, useColor bool) EncodeOption {
	return WithEncodeLogger(logging.NewSimpleLogger(w, verbosity, useColor))
}
