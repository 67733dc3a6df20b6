package dataset

import "github.com/pkg/errors"

// ErrUnknownAlgorithm indicates an algorithm name outside the supported set.
var ErrUnknownAlgorithm = errors.New("unknown search algorithm")

// ErrBinaryRequiresSnapshot indicates binary search was requested together
// with reread-on-query; sorting the dataset on every query would dominate
// the lookup cost, so binary search is only available to the cached store.
var ErrBinaryRequiresSnapshot = errors.New("binary search requires a cached snapshot")
