package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertIndexGrouped(t *testing.T) {
	existing := []string{"100", "245", "500"}
	// "300" groups with first digit 3, which is less than 5 ("500") but
	// greater than 2 ("245"): it should land before "500".
	idx := InsertIndex(existing, "300", Grouped)
	assert.Equal(t, 2, idx)
}

func TestInsertIndexOrdered(t *testing.T) {
	existing := []string{"100", "245", "500"}
	idx := InsertIndex(existing, "300", Ordered)
	assert.Equal(t, 2, idx)

	idx = InsertIndex(existing, "246", Ordered)
	assert.Equal(t, 2, idx)
}

func TestInsertIndexAppendsAtEnd(t *testing.T) {
	existing := []string{"100", "245"}
	idx := InsertIndex(existing, "900", Ordered)
	assert.Equal(t, 2, idx)
}

func TestInsertIndexEmptySequenceAppends(t *testing.T) {
	idx := InsertIndex(nil, "245", Ordered)
	assert.Equal(t, 0, idx)
}

func TestInsertIndexNonDigitNewTagAlwaysAppends(t *testing.T) {
	existing := []string{"100", "245"}
	idx := InsertIndex(existing, "AVA", Ordered)
	assert.Equal(t, 2, idx)
}

func TestInsertIndexStopsAtNonDigitExistingTag(t *testing.T) {
	existing := []string{"100", "AVA", "500"}
	idx := InsertIndex(existing, "245", Ordered)
	assert.Equal(t, 1, idx)
}
