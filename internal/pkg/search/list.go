package search

// ListStrategy scans the dataset lines in order, returning on the first
// match. O(n) per query; the simplest baseline.
type ListStrategy struct {
	lines []string
}

// NewList builds a ListStrategy over trimmed dataset lines.
func NewList(lines []string) *ListStrategy {
	return &ListStrategy{lines: lines}
}

// Query linearly scans for needle.
func (s *ListStrategy) Query(needle string) (bool, error) {
	for _, line := range s.lines {
		if line == needle {
			return true, nil
		}
	}
	return false, nil
}
