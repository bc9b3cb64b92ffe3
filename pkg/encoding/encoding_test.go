package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarshalString(t *testing.T) {
	assert.Equal(t, "hello     ", string(MarshalString("hello", 10)))
	assert.Equal(t, "12345", string(MarshalString("12345", 5)))
	assert.Equal(t, "Hello", string(MarshalString("Hello, World!", 5)))
	assert.Len(t, MarshalString("anything", 0), 0)
}

func TestMarshalDecimal(t *testing.T) {
	assert.Equal(t, "00042", string(MarshalDecimal(42, 5)))
	assert.Equal(t, "00000", string(MarshalDecimal(-1, 5)))
	assert.Equal(t, "345", string(MarshalDecimal(12345, 3)))
}

func TestUnmarshalDecimal(t *testing.T) {
	assert.Equal(t, 42, UnmarshalDecimal([]byte("00042")))
	assert.Equal(t, 0, UnmarshalDecimal([]byte("abcde")))
	assert.Equal(t, 12, UnmarshalDecimal([]byte("12xx")))
}

func TestUnmarshalDecimalStrict(t *testing.T) {
	n, err := UnmarshalDecimalStrict([]byte("00042"))
	assert.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = UnmarshalDecimalStrict([]byte("12x45"))
	assert.Error(t, err)
}
