// Package tailer follows a growing log file and emits every complete line
// appended to it.
package tailer

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/Raamakrishnan/ulog/internal/model"
	"github.com/Raamakrishnan/ulog/internal/watcher"
)

const (
	reconnectAttempts = 5
	reconnectDelay    = time.Second
)

// Tailer reads newly appended lines from the watched file and emits RawLine values.
type Tailer struct {
	mu        sync.Mutex
	file      *trackedFile
	out       chan model.RawLine
	events    <-chan watcher.Event
	watch     *watcher.Watcher
	fromStart bool
	logger    logrus.FieldLogger
	reopen    chan struct{}
}

type trackedFile struct {
	file   *os.File
	reader *bufio.Reader
	offset int64
	buf    string // partial line buffer
	number int    // lines emitted so far
}

// New creates a Tailer that reads events from the given Watcher. With
// fromStart the existing content is emitted first; otherwise tailing starts
// at the end of the file.
func New(w *watcher.Watcher, fromStart bool, logger logrus.FieldLogger) *Tailer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Tailer{
		out:       make(chan model.RawLine, 512),
		events:    w.Events,
		watch:     w,
		fromStart: fromStart,
		logger:    logger,
		reopen:    make(chan struct{}, 1),
	}
}

// Lines returns the channel where raw log lines are sent.
func (t *Tailer) Lines() <-chan model.RawLine {
	return t.out
}

// Start begins processing watcher events. Blocks until context is cancelled.
func (t *Tailer) Start(ctx context.Context) {
	defer close(t.out)
	defer t.closeFile()

	t.openFile(t.fromStart)
	t.readNewLines(ctx)

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-t.events:
			if !ok {
				return
			}
			t.handleEvent(ctx, ev)

		case <-t.reopen:
			t.openFile(true)
			t.readNewLines(ctx)
		}
	}
}

// handleEvent dispatches watcher events to the appropriate handler.
func (t *Tailer) handleEvent(ctx context.Context, ev watcher.Event) {
	switch {
	case ev.Op&fsnotify.Write != 0:
		t.readNewLines(ctx)

	case ev.Op&fsnotify.Create != 0:
		// New file appeared (possibly after rotation).
		t.closeFile()
		t.openFile(true)
		t.readNewLines(ctx)

	case ev.Op&fsnotify.Remove != 0, ev.Op&fsnotify.Rename != 0:
		// File rotated or deleted — close and schedule reconnect.
		t.closeFile()
		go t.reconnect(ctx)
	}
}

// openFile opens the watched file, either at its start or at the start of
// its last line.
func (t *Tailer) openFile(fromStart bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.file != nil {
		return
	}

	path := t.watch.Path()
	f, err := os.Open(path)
	if err != nil {
		t.logger.WithError(err).WithField("source", path).Warn("cannot open log")
		return
	}

	var offset int64
	if !fromStart {
		offset = lastLineStart(f)
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			offset = 0
		}
	}

	t.file = &trackedFile{
		file:   f,
		reader: bufio.NewReader(f),
		offset: offset,
	}
}

// lastLineStart returns the offset just past the last newline of f, so that
// an unterminated final line is emitted once it is completed.
func lastLineStart(f *os.File) int64 {
	info, err := f.Stat()
	if err != nil {
		return 0
	}

	buf := make([]byte, 4096)
	end := info.Size()
	for end > 0 {
		start := max(end-int64(len(buf)), 0)
		n, err := f.ReadAt(buf[:end-start], start)
		if err != nil && err != io.EOF {
			return info.Size()
		}
		if i := strings.LastIndexByte(string(buf[:n]), '\n'); i >= 0 {
			return start + int64(i) + 1
		}
		end = start
	}
	return 0
}

// readNewLines reads from the last offset to EOF and emits complete lines.
// A trailing fragment without a newline is held until the rest arrives.
func (t *Tailer) readNewLines(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tf := t.file
	if tf == nil {
		return
	}

	for {
		chunk, err := tf.reader.ReadString('\n')
		tf.offset += int64(len(chunk))

		if err != nil {
			tf.buf += chunk
			if err != io.EOF {
				t.logger.WithError(err).WithField("source", t.watch.Path()).Warn("read error")
			}
			return
		}

		text := strings.TrimRight(tf.buf+chunk, "\r\n")
		tf.buf = ""
		tf.number++

		select {
		case t.out <- model.RawLine{Text: text, Source: t.watch.Path(), Number: tf.number}:
		case <-ctx.Done():
			return
		}
	}
}

// closeFile releases the tracked file.
func (t *Tailer) closeFile() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.file != nil {
		t.file.file.Close()
		t.file = nil
	}
}

// reconnect polls for the file to reappear after rotation.
func (t *Tailer) reconnect(ctx context.Context) {
	path := t.watch.Path()
	for i := 0; i < reconnectAttempts; i++ {
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
		if _, err := os.Stat(path); err == nil {
			t.logger.WithField("source", path).Info("reconnected to rotated file")
			_ = t.watch.ReWatch()
			select {
			case t.reopen <- struct{}{}:
			default:
			}
			return
		}
	}
	t.logger.WithField("source", path).Warnf("gave up reconnecting after %d retries", reconnectAttempts)
}
