// Package ingest reads log input line by line, parses every line and applies
// an error policy to the lines that do not parse.
package ingest

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Raamakrishnan/ulog/internal/errors"
	"github.com/Raamakrishnan/ulog/internal/model"
	"github.com/Raamakrishnan/ulog/internal/parser"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// Reader builds a model.Log from line-oriented input.
type Reader struct {
	parser *parser.Parser
	policy Policy
	logger logrus.FieldLogger
}

// NewReader returns a Reader. A nil logger discards diagnostics.
func NewReader(p *parser.Parser, policy Policy, logger logrus.FieldLogger) *Reader {
	if p == nil {
		p = parser.New(parser.Options{})
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Reader{parser: p, policy: policy, logger: logger}
}

// ReadFile opens path and reads it with Read.
func (r *Reader) ReadFile(ctx context.Context, path string) (*model.Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStackTrace(&ReadError{Source: path, Err: err})
	}
	defer f.Close()

	return r.Read(ctx, f, path)
}

// Read parses every line of in. Under Skip the returned error is only ever an
// I/O error. Under Fail ingestion stops at the first *LineError. Under
// Collect the complete Log is returned together with every *LineError.
func (r *Reader) Read(ctx context.Context, in io.Reader, source string) (*model.Log, error) {
	log := model.NewLog()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var failures error
	number := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return log, errors.WithStackTrace(err)
		}
		number++

		line, err := r.parseLine(model.RawLine{Text: scanner.Text(), Source: source, Number: number})
		if err != nil {
			switch r.policy {
			case Fail:
				return log, err
			case Collect:
				failures = errors.Append(failures, err)
			}
			continue
		}
		log.Append(line)
	}

	if err := scanner.Err(); err != nil {
		return log, errors.WithStackTrace(&ReadError{Source: source, Err: err})
	}

	r.logger.WithFields(logrus.Fields{
		"source": source,
		"lines":  number,
		"parsed": log.Len(),
	}).Debug("ingested log")

	return log, failures
}

// parseLine parses raw and reports a failure as a *LineError. Under Skip the
// failure is also logged, since the caller drops it.
func (r *Reader) parseLine(raw model.RawLine) (model.Line, error) {
	line, err := r.parser.Parse(raw.Text)
	if err == nil {
		return line, nil
	}

	perr := err.(*parser.ParseError)
	if r.policy == Skip {
		r.logger.WithFields(logrus.Fields{
			"source": raw.Source,
			"line":   raw.Number,
			"field":  perr.Field.String(),
		}).Warnf("skipping malformed line: %v", perr.Err)
	}

	return model.Line{}, &LineError{Source: raw.Source, Number: raw.Number, Err: perr}
}
