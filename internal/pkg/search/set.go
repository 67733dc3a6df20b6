package search

// SetStrategy answers queries from a hash set built once from the dataset
// lines. Lookups are O(1); best suited to the cached store.
type SetStrategy struct {
	lines map[string]struct{}
}

// NewSet builds a SetStrategy from trimmed dataset lines.
func NewSet(lines []string) *SetStrategy {
	m := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		m[line] = struct{}{}
	}
	return &SetStrategy{lines: m}
}

// Query reports whether needle is a member of the set.
func (s *SetStrategy) Query(needle string) (bool, error) {
	_, ok := s.lines[needle]
	return ok, nil
}
