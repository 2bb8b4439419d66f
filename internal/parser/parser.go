// Package parser turns UVM report lines into model.Line values.
//
// A line has the shape
//
//	UVM_INFO path/to/file.sv(42) @ 100ns: uvm_test_top.env.agent [TAG] message text
//
// Fields are matched left to right in a single pass. A failure names the
// field and the remaining input; the parser never backtracks into a field
// that has already matched.
package parser

import (
	"strconv"
	"strings"

	"github.com/Raamakrishnan/ulog/internal/model"
)

// Options tunes the accepted grammar.
type Options struct {
	// Aliases accepts lowercase severity aliases (info, warn, ...) in place
	// of the UVM_* literals.
	Aliases bool
}

// Parser converts a raw log line into a structured Line.
type Parser struct {
	opts Options
}

func New(opts Options) *Parser {
	return &Parser{opts: opts}
}

var defaultParser = New(Options{})

// Parse parses text with the default options.
func Parse(text string) (model.Line, error) {
	return defaultParser.Parse(text)
}

// Parse parses one line of text. The returned error is always a *ParseError.
func (p *Parser) Parse(text string) (model.Line, error) {
	line := model.Line{Raw: text}
	s := text
	var err error

	if line.Severity, s, err = p.severity(s); err != nil {
		return model.Line{}, err
	}
	if line.File, line.LineNo, s, err = fileLine(s); err != nil {
		return model.Line{}, err
	}
	if s, err = at(s); err != nil {
		return model.Line{}, err
	}
	if line.Time, line.Unit, s, err = timestamp(s); err != nil {
		return model.Line{}, err
	}
	if line.Component, s, err = component(s); err != nil {
		return model.Line{}, err
	}
	if line.ID, s, err = id(s); err != nil {
		return model.Line{}, err
	}
	line.Message = s

	return line, nil
}

func (p *Parser) severity(s string) (model.Severity, string, error) {
	sev, n, ok := model.MatchSeverityPrefix(s, p.opts.Aliases)
	if !ok {
		return 0, s, fail(FieldSeverity, s, ErrNoMatch)
	}
	rest, err := space1(FieldSeverity, s[n:])
	return sev, rest, err
}

// fileLine matches FILE(LINE).
func fileLine(s string) (string, uint32, string, error) {
	open := strings.IndexByte(s, '(')
	if open <= 0 {
		return "", 0, s, fail(FieldFile, s, ErrNoMatch)
	}
	file, rest := s[:open], s[open+1:]

	digits, rest := digit1(rest)
	if digits == "" || !strings.HasPrefix(rest, ")") {
		return "", 0, s, fail(FieldLine, s[open+1:], ErrNoMatch)
	}
	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return "", 0, s, fail(FieldLine, s[open+1:], err)
	}
	if n == 0 {
		return "", 0, s, fail(FieldLine, s[open+1:], ErrZeroLine)
	}

	rest, err = space1(FieldLine, rest[1:])
	return file, uint32(n), rest, err
}

func at(s string) (string, error) {
	if !strings.HasPrefix(s, "@") {
		return s, fail(FieldAt, s, ErrNoMatch)
	}
	return space1(FieldAt, s[1:])
}

// timestamp matches TIME[UNIT]:. An unknown unit code is not an error; the
// unit is left unset.
func timestamp(s string) (uint64, model.TimeUnit, string, error) {
	digits, rest := digit1(s)
	if digits == "" {
		return 0, model.NoUnit, s, fail(FieldTime, s, ErrNoMatch)
	}
	code, rest := alpha0(rest)
	if !strings.HasPrefix(rest, ":") {
		return 0, model.NoUnit, s, fail(FieldTime, s, ErrNoMatch)
	}
	t, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, model.NoUnit, s, fail(FieldTime, s, err)
	}
	unit, _ := model.ParseTimeUnit(code)

	rest, err = space1(FieldTime, rest[1:])
	return t, unit, rest, err
}

func component(s string) (string, string, error) {
	end := strings.IndexAny(s, " \t")
	if end < 0 {
		end = len(s)
	}
	if end == 0 {
		return "", s, fail(FieldComponent, s, ErrNoMatch)
	}
	rest, err := space1(FieldComponent, s[end:])
	return s[:end], rest, err
}

// id matches [ID] and the whitespace before the message, which is
// mandatory even when the message is empty.
func id(s string) (string, string, error) {
	if !strings.HasPrefix(s, "[") {
		return "", s, fail(FieldID, s, ErrNoMatch)
	}
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return "", s, fail(FieldID, s, ErrNoMatch)
	}
	rest, err := space1(FieldID, s[end+1:])
	return s[1:end], rest, err
}

func space1(f Field, s string) (string, error) {
	rest := strings.TrimLeft(s, " \t")
	if len(rest) == len(s) {
		return s, fail(f, s, ErrMissingSpace)
	}
	return rest, nil
}

func digit1(s string) (string, string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}

func alpha0(s string) (string, string) {
	i := 0
	for i < len(s) && (s[i] >= 'a' && s[i] <= 'z' || s[i] >= 'A' && s[i] <= 'Z') {
		i++
	}
	return s[:i], s[i:]
}

func fail(f Field, rest string, err error) error {
	return &ParseError{Field: f, Remainder: rest, Err: err}
}
