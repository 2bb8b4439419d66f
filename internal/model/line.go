package model

import "fmt"

// Line represents a single parsed log line.
type Line struct {
	Severity  Severity `json:"severity"`
	File      string   `json:"file"`
	LineNo    uint32   `json:"line"`
	Time      uint64   `json:"time"`
	Unit      TimeUnit `json:"unit,omitempty"`
	Component string   `json:"component"`
	ID        string   `json:"id"`
	Message   string   `json:"message"`
	Raw       string   `json:"-"` // original line text
}

// String reassembles the line in its canonical textual form. The separator
// after the id is always written, so an empty message leaves a trailing space.
func (l Line) String() string {
	return fmt.Sprintf("%s %s(%d) @ %d%s: %s [%s] %s",
		l.Severity, l.File, l.LineNo, l.Time, l.Unit, l.Component, l.ID, l.Message)
}

// RawLine is one line of input text before parsing.
type RawLine struct {
	Text   string
	Source string // originating file path
	Number int    // 1-based position in the source
}
