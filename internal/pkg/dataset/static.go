package dataset

import (
	"context"
	"os"
	"time"

	"linematch/internal/pkg/search"

	"github.com/pkg/errors"
)

// StaticStore serves lookups from an immutable artifact built once at
// construction. There is no writer after construction, so concurrent
// lookups need no locking. A construction failure means the server must
// not start: serving from an unusable index is worse than not serving.
type StaticStore struct {
	strategy search.Strategy
}

// NewStaticStore reads the dataset once and hands it to the chosen
// strategy's build step.
func NewStaticStore(path string, algorithm search.Algorithm) (*StaticStore, error) {
	var strategy search.Strategy
	switch algorithm {
	case search.AlgorithmSet:
		lines, err := ReadLines(path)
		if err != nil {
			return nil, err
		}
		strategy = search.NewSet(lines)
	case search.AlgorithmList:
		lines, err := ReadLines(path)
		if err != nil {
			return nil, err
		}
		strategy = search.NewList(lines)
	case search.AlgorithmBinary:
		lines, err := ReadLines(path)
		if err != nil {
			return nil, err
		}
		strategy = search.NewBinary(lines)
	case search.AlgorithmMmap:
		// The mapping length is fixed here, so lines appended to the file
		// later stay invisible for the lifetime of the store.
		mm, err := search.NewMmap(path)
		if err != nil {
			return nil, err
		}
		strategy = mm
	case search.AlgorithmGrep:
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read dataset failed")
		}
		strategy = search.NewGrepContent(content)
	default:
		return nil, errors.Wrapf(ErrUnknownAlgorithm, "%q", algorithm)
	}
	return &StaticStore{strategy: strategy}, nil
}

// Lookup delegates to the strategy built at construction. No file I/O
// happens on this path.
func (s *StaticStore) Lookup(_ context.Context, query string) (Result, error) {
	start := time.Now()
	matched, err := s.strategy.Query(search.Trim(query))
	if err != nil {
		return Result{}, errors.Wrap(err, "query snapshot failed")
	}
	return Result{Matched: matched, Elapsed: time.Since(start)}, nil
}
