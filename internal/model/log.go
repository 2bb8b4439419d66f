package model

import "iter"

// Log is the ordered, append-only collection of lines parsed from one input.
// Traversals are restartable and yield lines in insertion order.
type Log struct {
	lines []Line
}

func NewLog() *Log {
	return &Log{}
}

// Append adds a line to the end of the log.
func (l *Log) Append(line Line) {
	l.lines = append(l.lines, line)
}

// Len returns the number of lines held.
func (l *Log) Len() int {
	return len(l.lines)
}

// At returns the i-th line in insertion order.
func (l *Log) At(i int) Line {
	return l.lines[i]
}

// All yields every line in insertion order.
func (l *Log) All() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for _, line := range l.lines {
			if !yield(line) {
				return
			}
		}
	}
}

// Filter yields the lines for which keep returns true.
func (l *Log) Filter(keep func(Line) bool) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for _, line := range l.lines {
			if keep(line) && !yield(line) {
				return
			}
		}
	}
}
