package option

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDecodeOptions(t *testing.T) {
	o := DefaultDecodeOptions()
	assert.True(t, o.ToUnicode)
	assert.Equal(t, UTF8Strict, o.UTF8Handling)
	assert.Equal(t, "iso8859-1", o.FileEncoding)
}

func TestDecodeOptionSetters(t *testing.T) {
	o := DefaultDecodeOptions()
	for _, opt := range []DecodeOption{
		WithToUnicode(false),
		WithForceUTF8(true),
		WithHideUTF8Warnings(true),
		WithUTF8Handling(UTF8Replace),
		WithFileEncoding("utf-8"),
	} {
		opt(o)
	}
	assert.False(t, o.ToUnicode)
	assert.True(t, o.ForceUTF8)
	assert.True(t, o.HideUTF8Warnings)
	assert.Equal(t, UTF8Replace, o.UTF8Handling)
	assert.Equal(t, "utf-8", o.FileEncoding)
}

func TestWithSimpleLogger(t *testing.T) {
	var buf bytes.Buffer
	o := DefaultDecodeOptions()
	WithSimpleLogger(&buf, 1, false)(o)
	o.Logger.Info("hello from test")
	assert.Contains(t, buf.String(), "hello from test")
}

func TestDefaultEncodeOptions(t *testing.T) {
	o := DefaultEncodeOptions()
	assert.False(t, o.ForceUTF8)
	assert.Nil(t, o.Logger.GetSink())
}

func TestEncodeOptionSetters(t *testing.T) {
	o := DefaultEncodeOptions()
	WithEncodeForceUTF8(true)(o)
	assert.True(t, o.ForceUTF8)

	var buf bytes.Buffer
	WithEncodeSimpleLogger(&buf, 0, false)(o)
	o.Logger.Info("encode logger")
	assert.Contains(t, buf.String(), "encode logger")
}
