package ingest

import (
	"fmt"

	"github.com/Raamakrishnan/ulog/internal/parser"
)

// LineError is a parse failure of one input line.
type LineError struct {
	Source string
	Number int
	Err    *parser.ParseError
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Source, e.Number, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ReadError is an I/O failure while opening or reading the input. It is
// never produced by a malformed line.
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Source, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
