// Package search implements the exact full-line matching strategies.
//
// Every strategy answers the same question: does the query, after trimming
// trailing padding, exactly equal one line of the dataset? Strategies differ
// only in how they get there, never in the answer.
package search

import "strings"

// TrailingPadding is the set of bytes stripped from the end of both queries
// and dataset lines before comparison: line terminators plus the NUL padding
// left by fixed-size legacy payloads. Interior and leading whitespace is
// significant.
const TrailingPadding = "\r\n\x00"

// Algorithm identifies a search strategy.
type Algorithm string

// Supported algorithms.
const (
	AlgorithmSet    Algorithm = "set"
	AlgorithmList   Algorithm = "list"
	AlgorithmMmap   Algorithm = "mmap"
	AlgorithmBinary Algorithm = "binary"
	AlgorithmGrep   Algorithm = "grep"
)

// Algorithms returns all supported algorithm names.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmSet, AlgorithmList, AlgorithmMmap, AlgorithmBinary, AlgorithmGrep}
}

// Valid reports whether a is a supported algorithm name.
func (a Algorithm) Valid() bool {
	switch a {
	case AlgorithmSet, AlgorithmList, AlgorithmMmap, AlgorithmBinary, AlgorithmGrep:
		return true
	}
	return false
}

// Strategy answers exact full-line existence queries.
type Strategy interface {
	// Query reports whether needle exactly matches a dataset line.
	// The needle must already be trimmed with Trim.
	Query(needle string) (bool, error)
}

// Trim strips the trailing padding bytes from a query or dataset line.
func Trim(s string) string {
	return strings.TrimRight(s, TrailingPadding)
}
