package ingest

import (
	"context"
	"sync"

	"github.com/Raamakrishnan/ulog/internal/errors"
	"github.com/Raamakrishnan/ulog/internal/model"
)

const streamBuffer = 256

// Stream parses raw lines as they arrive and emits the parsed lines in input
// order. It is the follow-mode counterpart of Read.
type Stream struct {
	reader *Reader
	input  <-chan model.RawLine
	out    chan model.Line

	mu      sync.Mutex
	err     error
	skipped int64
}

// Stream creates a Stream reading from input with r's parser and policy.
func (r *Reader) Stream(input <-chan model.RawLine) *Stream {
	return &Stream{
		reader: r,
		input:  input,
		out:    make(chan model.Line, streamBuffer),
	}
}

// Lines returns the channel of parsed lines. It is closed when Start returns.
func (s *Stream) Lines() <-chan model.Line {
	return s.out
}

// Err returns the failure that ended the stream, or the failures collected so
// far under the Collect policy.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Skipped returns the number of lines that failed to parse.
func (s *Stream) Skipped() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skipped
}

// Start reads from the input channel, parsing each line. Blocks until the
// context is cancelled, the input channel is closed, or a line fails under
// the Fail policy.
func (s *Stream) Start(ctx context.Context) {
	defer close(s.out)

	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-s.input:
			if !ok {
				return
			}
			line, err := s.reader.parseLine(raw)
			if err != nil {
				if s.fail(err) {
					return
				}
				continue
			}
			select {
			case s.out <- line:
			case <-ctx.Done():
				return
			}
		}
	}
}

// fail records err and reports whether the stream must stop.
func (s *Stream) fail(err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.skipped++
	switch s.reader.policy {
	case Fail:
		s.err = err
		return true
	case Collect:
		s.err = errors.Append(s.err, err)
	}
	return false
}
