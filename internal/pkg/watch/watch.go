// Package watch warns when a cached dataset changes on disk.
//
// When reread_on_query is off the server answers from the snapshot built at
// startup, so an out-of-band write to the dataset silently makes results
// stale until a restart. The watcher turns that silence into a log line; it
// never touches the snapshot itself.
package watch

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// Watcher watches the dataset file for out-of-band writes.
type Watcher struct {
	path string
	fsw  *fsnotify.Watcher
}

// New creates a watcher for the dataset file. The parent directory is
// watched rather than the file itself, since writers often replace the file
// instead of appending to it.
func New(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create fsnotify watcher failed")
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, errors.Wrap(err, "watch dataset directory failed")
	}
	return &Watcher{path: path, fsw: fsw}, nil
}

// Run logs a warning each time the dataset changes, until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.WithFields(logrus.Fields{
				"path": w.path,
				"op":   ev.Op.String(),
			}).Warn("dataset changed on disk; cached results are stale until restart")
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.WithError(err).Warn("dataset watcher error")
		}
	}
}
