// Package ordering implements the two tag-preserving field insertion
// policies MARC 21 tooling conventionally offers: "grouped" (by first
// tag digit) and "ordered" (by full numeric tag). Both are a pure
// "insert at computed index" over an indexed sequence rather than an
// in-place mutation during iteration.
package ordering

// Mode selects which ordering policy InsertIndex applies.
type Mode int

const (
	// Grouped compares only the first digit of each tag.
	Grouped Mode = iota
	// Ordered compares the full 3-digit tag numerically.
	Ordered
)

// InsertIndex returns the position at which newTag should be inserted
// into the tags of an already-ordered sequence (existing, in stored
// order) so that the sequence remains ordered under mode. Non-digit tags
// never reorder: a non-digit existing tag halts the scan and becomes the
// insertion point, and a non-digit newTag is always appended (signaled by
// returning len(existing)).
func InsertIndex(existing []string, newTag string, mode Mode) int {
	if len(existing) == 0 || !isAllDigits(newTag) {
		return len(existing)
	}

	newKey := sortKey(newTag, mode)
	for i, tag := range existing {
		if !isAllDigits(tag) {
			return i
		}
		if sortKey(tag, mode) > newKey {
			return i
		}
	}
	return len(existing)
}

func sortKey(tag string, mode Mode) int {
	if mode == Grouped {
		return int(tag[0] - '0')
	}
	n := 0
	for _, c := range tag {
		n = n*10 + int(c-'0')
	}
	return n
}

func isAllDigits(tag string) bool {
	if len(tag) == 0 {
		return false
	}
	for _, c := range tag {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
