package search

import "sort"

// BinaryStrategy answers queries with a binary search over a sorted copy of
// the dataset lines. O(log n) per query. Sorting is the build step, so this
// strategy only makes sense for the cached store; sorting per query would
// dominate the lookup cost.
type BinaryStrategy struct {
	sorted []string
}

// NewBinary builds a BinaryStrategy by sorting a copy of the trimmed lines.
func NewBinary(lines []string) *BinaryStrategy {
	sorted := make([]string, len(lines))
	copy(sorted, lines)
	sort.Strings(sorted)
	return &BinaryStrategy{sorted: sorted}
}

// Query binary-searches for needle.
func (s *BinaryStrategy) Query(needle string) (bool, error) {
	i := sort.SearchStrings(s.sorted, needle)
	return i < len(s.sorted) && s.sorted[i] == needle, nil
}
