// Package dataset implements the line stores that back query lookups.
//
// A Store answers one question: does this exact line exist in the dataset
// file? Two implementations cover the two freshness modes. StaticStore
// builds an immutable snapshot once at construction and never touches the
// file again; DynamicStore re-reads the file on every lookup so out-of-band
// writes are visible on the very next query. The mode is chosen once at
// startup from the reread_on_query setting.
package dataset

import (
	"bufio"
	"context"
	"os"
	"time"

	"linematch/internal/pkg/search"

	"github.com/pkg/errors"
)

// maxLineBytes bounds a single dataset line when scanning.
const maxLineBytes = 1 << 20

// Result reports the outcome of a single lookup.
type Result struct {
	Matched bool
	Elapsed time.Duration
}

// Store answers exact full-line existence queries against the dataset.
type Store interface {
	// Lookup reports whether query exactly matches a dataset line.
	// An unreadable dataset is an error, never a "not found".
	Lookup(ctx context.Context, query string) (Result, error)
}

// New creates the store matching the configured freshness mode.
func New(path string, algorithm search.Algorithm, rereadOnQuery bool) (Store, error) {
	if rereadOnQuery {
		return NewDynamicStore(path, algorithm)
	}
	return NewStaticStore(path, algorithm)
}

// ReadLines reads the dataset file and returns its lines with trailing
// padding stripped.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open dataset failed")
	}
	defer f.Close()
	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		lines = append(lines, search.Trim(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read dataset failed")
	}
	return lines, nil
}
