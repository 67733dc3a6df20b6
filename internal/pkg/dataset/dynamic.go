package dataset

import (
	"context"
	"time"

	"linematch/internal/pkg/search"

	"github.com/pkg/errors"
)

// queryFunc evaluates one query against the file's current content.
type queryFunc func(path, needle string) (bool, error)

// DynamicStore re-reads the dataset on every lookup, so a line appended to
// the file between two queries is visible on the second one without a
// restart. It keeps no state beyond the path; concurrent lookups never
// contend on an in-process lock. An I/O failure is local to the one query
// that hit it.
type DynamicStore struct {
	path  string
	query queryFunc
}

// NewDynamicStore selects the per-query evaluation for the algorithm. The
// choice happens once here, not per lookup.
func NewDynamicStore(path string, algorithm search.Algorithm) (*DynamicStore, error) {
	var query queryFunc
	switch algorithm {
	case search.AlgorithmSet:
		query = queryFreshSet
	case search.AlgorithmList:
		query = queryFreshList
	case search.AlgorithmMmap:
		query = queryFreshMmap
	case search.AlgorithmGrep:
		query = queryFreshGrep
	case search.AlgorithmBinary:
		return nil, ErrBinaryRequiresSnapshot
	default:
		return nil, errors.Wrapf(ErrUnknownAlgorithm, "%q", algorithm)
	}
	return &DynamicStore{path: path, query: query}, nil
}

// Lookup evaluates the query against the file's content as of now.
func (s *DynamicStore) Lookup(_ context.Context, query string) (Result, error) {
	start := time.Now()
	matched, err := s.query(s.path, search.Trim(query))
	if err != nil {
		return Result{}, errors.Wrap(err, "query dataset failed")
	}
	return Result{Matched: matched, Elapsed: time.Since(start)}, nil
}

func queryFreshSet(path, needle string) (bool, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return false, err
	}
	return search.NewSet(lines).Query(needle)
}

func queryFreshList(path, needle string) (bool, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return false, err
	}
	return search.NewList(lines).Query(needle)
}

func queryFreshMmap(path, needle string) (bool, error) {
	mm, err := search.NewMmap(path)
	if err != nil {
		return false, err
	}
	matched, err := mm.Query(needle)
	if closeErr := mm.Close(); err == nil {
		err = closeErr
	}
	return matched, err
}

func queryFreshGrep(path, needle string) (bool, error) {
	return search.NewGrep(path).Query(needle)
}
