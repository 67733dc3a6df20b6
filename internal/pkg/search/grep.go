package search

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/pkg/errors"
)

// grepTimeout bounds a single grep invocation so a wedged subprocess cannot
// hold a connection handler forever.
const grepTimeout = 5 * time.Second

// GrepStrategy delegates whole-line matching to the system grep binary with
// -x. When content is set the snapshot is fed to grep on stdin, so the
// cached store keeps its construction-time view of the dataset even though
// the matching itself is external.
type GrepStrategy struct {
	path    string
	content []byte
}

// NewGrep builds a GrepStrategy that greps the file at path on every query.
func NewGrep(path string) *GrepStrategy {
	return &GrepStrategy{path: path}
}

// NewGrepContent builds a GrepStrategy over a captured dataset snapshot.
func NewGrepContent(content []byte) *GrepStrategy {
	return &GrepStrategy{content: content}
}

// Query runs grep -x and maps its exit code to a match result.
func (s *GrepStrategy) Query(needle string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), grepTimeout)
	defer cancel()
	var cmd *exec.Cmd
	if s.content != nil {
		cmd = exec.CommandContext(ctx, "grep", "-x", "--", needle)
		cmd.Stdin = bytes.NewReader(s.content)
	} else {
		cmd = exec.CommandContext(ctx, "grep", "-x", "--", needle, s.path)
	}
	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		// Exit code 1 means no matching line; anything else is a fault.
		return false, nil
	}
	return false, errors.Wrap(err, "run grep failed")
}
