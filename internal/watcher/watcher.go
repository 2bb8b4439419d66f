// Package watcher reports changes to the single log file being followed.
package watcher

import (
	"context"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/Raamakrishnan/ulog/internal/errors"
)

// Event represents a file change detected by the watcher.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watcher monitors one file for changes using OS-level notifications.
type Watcher struct {
	fsw    *fsnotify.Watcher
	Events chan Event
	path   string
	logger logrus.FieldLogger
}

// New creates a Watcher for pattern, a path or doublestar glob that must
// resolve to exactly one file.
func New(pattern string, logger logrus.FieldLogger) (*Watcher, error) {
	path, err := Resolve(pattern)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}
	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, errors.WithStackTraceAndPrefix(err, "cannot watch %s", path)
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Watcher{
		fsw:    fsw,
		Events: make(chan Event, 256),
		path:   path,
		logger: logger,
	}, nil
}

// Start begins listening for file events. It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	defer w.fsw.Close()
	defer close(w.Events)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			// Forward relevant events (write, create, remove, rename).
			switch {
			case ev.Op&fsnotify.Write != 0,
				ev.Op&fsnotify.Create != 0,
				ev.Op&fsnotify.Remove != 0,
				ev.Op&fsnotify.Rename != 0:
				select {
				case w.Events <- Event{Path: ev.Name, Op: ev.Op}:
				case <-ctx.Done():
					return
				}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("watcher error")
		}
	}
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// ReWatch adds the path back to the watcher (used after rotation).
func (w *Watcher) ReWatch() error {
	return w.fsw.Add(w.path)
}

// Resolve expands pattern and returns the absolute path of its only match.
// Supports recursive patterns like sim/**/run.log via doublestar.
func Resolve(pattern string) (string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return "", errors.WithStackTraceAndPrefix(err, "failed to expand pattern %q", pattern)
	}

	switch len(matches) {
	case 0:
		return "", errors.Errorf("no file matched %q", pattern)
	case 1:
		return filepath.Abs(matches[0])
	default:
		return "", errors.Errorf("pattern %q matched %d files; follow one log at a time", pattern, len(matches))
	}
}
