// Package output writes log lines and summaries to a terminal or a pipe.
//
// The default rendering of a kept line is its canonical form, reassembled
// field by field. RawRenderer echoes the input text instead.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Raamakrishnan/ulog/internal/errors"
	"github.com/Raamakrishnan/ulog/internal/model"
)

// Renderer writes Line values to an output stream.
type Renderer interface {
	Render(line model.Line) error
}

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatRaw  Format = "raw"
	FormatJSON Format = "json"
)

// ParseFormat converts a format name such as "json" to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatRaw, FormatJSON:
		return f, nil
	default:
		return "", errors.Errorf("unknown output format %q (want text, raw or json)", s)
	}
}

// New returns the Renderer for format writing to w.
func New(format Format, w io.Writer) Renderer {
	switch format {
	case FormatRaw:
		return NewRawRenderer(w)
	case FormatJSON:
		return NewJSONRenderer(w)
	default:
		return NewTextRenderer(w)
	}
}

// ---------------------------------------------------------------------------
// Text Renderer (canonical form, colorized on terminals)
// ---------------------------------------------------------------------------

// Styles colour the parts of a canonical line.
type Styles struct {
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Fatal   lipgloss.Style
	Source  lipgloss.Style
	ID      lipgloss.Style
}

// NewStyles builds the colour scheme for r. Colours are dropped when r's
// output is not a terminal.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Info:    r.NewStyle().Foreground(lipgloss.Color("245")),            // gray
		Warning: r.NewStyle().Foreground(lipgloss.Color("220")),            // yellow
		Error:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // red bold
		Fatal: r.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("196")).
			Bold(true), // white on red
		Source: r.NewStyle().Foreground(lipgloss.Color("39")).Faint(true), // cyan
		ID:     r.NewStyle().Foreground(lipgloss.Color("141")),            // purple
	}
}

// Severity styles the severity literal.
func (s Styles) Severity(sev model.Severity) string {
	text := sev.String()
	switch sev {
	case model.Warning:
		return s.Warning.Render(text)
	case model.Error:
		return s.Error.Render(text)
	case model.Fatal:
		return s.Fatal.Render(text)
	default:
		return s.Info.Render(text)
	}
}

// Line renders line in canonical form. Without colours the result equals
// line.String().
func (s Styles) Line(line model.Line) string {
	return fmt.Sprintf("%s %s @ %d%s: %s %s %s",
		s.Severity(line.Severity),
		s.Source.Render(fmt.Sprintf("%s(%d)", line.File, line.LineNo)),
		line.Time, line.Unit,
		line.Component,
		s.ID.Render("["+line.ID+"]"),
		line.Message)
}

// TextRenderer prints lines in canonical form with severity-based colors.
type TextRenderer struct {
	w      io.Writer
	styles Styles
}

// NewTextRenderer returns a Renderer that writes canonical lines to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w, styles: NewStyles(lipgloss.NewRenderer(w))}
}

func (r *TextRenderer) Render(line model.Line) error {
	_, err := fmt.Fprintln(r.w, r.styles.Line(line))
	return err
}

// ---------------------------------------------------------------------------
// Raw Renderer (original text)
// ---------------------------------------------------------------------------

// RawRenderer echoes the text each line was parsed from.
type RawRenderer struct {
	w io.Writer
}

func NewRawRenderer(w io.Writer) *RawRenderer {
	return &RawRenderer{w: w}
}

func (r *RawRenderer) Render(line model.Line) error {
	_, err := fmt.Fprintln(r.w, line.Raw)
	return err
}

// ---------------------------------------------------------------------------
// JSON Renderer (structured output for piping)
// ---------------------------------------------------------------------------

// JSONRenderer prints each line as a single JSON object per line.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer returns a Renderer that writes JSON lines to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(w)}
}

func (r *JSONRenderer) Render(line model.Line) error {
	return r.enc.Encode(line)
}

// Sprint formats line as a single string without a trailing newline. Text
// lines are coloured with styles.
func Sprint(format Format, styles Styles, line model.Line) (string, error) {
	switch format {
	case FormatRaw:
		return line.Raw, nil
	case FormatJSON:
		data, err := json.Marshal(line)
		if err != nil {
			return "", errors.WithStackTrace(err)
		}
		return string(data), nil
	default:
		return styles.Line(line), nil
	}
}
