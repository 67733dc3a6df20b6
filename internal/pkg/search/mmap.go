package search

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// MmapStrategy scans a memory-mapped view of the raw dataset bytes, splitting
// on line terminators during the scan instead of pre-splitting the file. The
// mapping length is fixed when the file is mapped, so content appended to the
// file afterwards is never visible through this strategy.
type MmapStrategy struct {
	data []byte
}

// NewMmap maps the dataset file. The caller must Close the strategy to
// release the mapping.
func NewMmap(path string) (*MmapStrategy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open dataset failed")
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat dataset failed")
	}
	// Empty files cannot be mapped; an empty dataset matches nothing.
	if fi.Size() == 0 {
		return &MmapStrategy{}, nil
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(fi.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrap(err, "mmap dataset failed")
	}
	return &MmapStrategy{data: data}, nil
}

// Query scans the mapping line by line for a whole-line match. A query that
// happens to be a substring or suffix of a longer line never matches.
func (s *MmapStrategy) Query(needle string) (bool, error) {
	rest := s.data
	for len(rest) > 0 {
		line := rest
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line = rest[:i]
			rest = rest[i+1:]
		} else {
			rest = nil
		}
		line = bytes.TrimRight(line, TrailingPadding)
		if string(line) == needle {
			return true, nil
		}
	}
	return false, nil
}

// Close releases the mapping. Safe to call more than once.
func (s *MmapStrategy) Close() error {
	if s.data == nil {
		return nil
	}
	data := s.data
	s.data = nil
	return errors.Wrap(unix.Munmap(data), "munmap dataset failed")
}
