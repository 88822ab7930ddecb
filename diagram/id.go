package diagram

import (
	"fmt"
	"strconv"
)

// Node ids use prefix 'n', edge ids use prefix 'e'.
const (
	NodeIDPrefix = "n"
	EdgeIDPrefix = "e"
)

// UniqueID generates unique incremental ids per prefix and tracks the
// high-water mark so that ids supplied by a loaded diagram never collide
// with subsequently generated ones.
type UniqueID struct {
	counters map[string]int
}

// NewUniqueID creates an id generator with all counters at zero.
func NewUniqueID() *UniqueID {
	return &UniqueID{counters: make(map[string]int)}
}

// Next returns the next unused id for the given prefix and advances the
// counter.
func (u *UniqueID) Next(prefix string) string {
	id := fmt.Sprintf("%s%d", prefix, u.counters[prefix])
	u.counters[prefix]++
	return id
}

// Observe parses an externally supplied id and advances the matching
// counter past it if necessary. Malformed ids are ignored: this is fed
// from file parsing and must never fail. Idempotent, never decreases a
// counter.
func (u *UniqueID) Observe(id string) {
	prefix, value, ok := splitID(id)
	if !ok {
		return
	}
	if value >= u.counters[prefix] {
		u.counters[prefix] = value + 1
	}
}

// splitID breaks an id into its prefix and numeric part.
func splitID(id string) (prefix string, value int, ok bool) {
	i := 0
	for i < len(id) && (id[i] < '0' || id[i] > '9') {
		i++
	}
	if i == 0 || i == len(id) {
		return "", 0, false
	}
	value, err := strconv.Atoi(id[i:])
	if err != nil || value < 0 {
		return "", 0, false
	}
	return id[:i], value, true
}
