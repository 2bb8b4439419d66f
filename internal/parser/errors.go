package parser

import (
	"errors"
	"fmt"
)

// Field names a grammar field of a log line.
type Field uint8

const (
	FieldSeverity Field = iota
	FieldFile
	FieldLine
	FieldAt
	FieldTime
	FieldComponent
	FieldID
)

func (f Field) String() string {
	switch f {
	case FieldSeverity:
		return "severity"
	case FieldFile:
		return "file"
	case FieldLine:
		return "line"
	case FieldAt:
		return "at"
	case FieldTime:
		return "time"
	case FieldComponent:
		return "component"
	case FieldID:
		return "id"
	default:
		return fmt.Sprintf("Field(%d)", uint8(f))
	}
}

var (
	// ErrNoMatch reports that the input did not match the field's grammar.
	ErrNoMatch = errors.New("no match")
	// ErrMissingSpace reports a field not followed by whitespace.
	ErrMissingSpace = errors.New("expected whitespace")
	// ErrZeroLine reports a source line number of zero.
	ErrZeroLine = errors.New("line number must be positive")
)

// ParseError is returned when a line does not match the grammar. Remainder is
// the unconsumed input at the point the field failed.
type ParseError struct {
	Field     Field
	Remainder string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v at %q", e.Field, e.Err, e.Remainder)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
