package model

import (
	"fmt"
	"strings"
)

// Severity is the fixed diagnostic level of a log line.
type Severity uint8

const (
	Info Severity = iota
	Warning
	Error
	Fatal
)

// Severities lists every severity in ascending order.
var Severities = []Severity{Info, Warning, Error, Fatal}

// severityLiteral is one accepted spelling of a severity.
type severityLiteral struct {
	text     string
	severity Severity
	alias    bool
}

// severityTable holds every accepted spelling. Canonical literals come first;
// within each group longer literals precede their prefixes.
var severityTable = []severityLiteral{
	{"UVM_WARNING", Warning, false},
	{"UVM_ERROR", Error, false},
	{"UVM_FATAL", Fatal, false},
	{"UVM_INFO", Info, false},
	{"warning", Warning, true},
	{"error", Error, true},
	{"fatal", Fatal, true},
	{"warn", Warning, true},
	{"info", Info, true},
}

// String returns the canonical literal used in the log grammar.
func (s Severity) String() string {
	switch s {
	case Info:
		return "UVM_INFO"
	case Warning:
		return "UVM_WARNING"
	case Error:
		return "UVM_ERROR"
	case Fatal:
		return "UVM_FATAL"
	default:
		return fmt.Sprintf("Severity(%d)", uint8(s))
	}
}

// ParseSeverity converts an exact literal to a Severity. Lowercase aliases
// are only recognised when aliases is true.
func ParseSeverity(s string, aliases bool) (Severity, error) {
	for _, lit := range severityTable {
		if lit.alias && !aliases {
			continue
		}
		if lit.text == s {
			return lit.severity, nil
		}
	}
	return 0, fmt.Errorf("%q is not a valid severity", s)
}

// MatchSeverityPrefix returns the severity whose literal is a prefix of s
// together with the literal length. Longer literals are tried first.
func MatchSeverityPrefix(s string, aliases bool) (Severity, int, bool) {
	for _, lit := range severityTable {
		if lit.alias && !aliases {
			continue
		}
		if strings.HasPrefix(s, lit.text) {
			return lit.severity, len(lit.text), true
		}
	}
	return 0, 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if s > Fatal {
		return nil, fmt.Errorf("invalid severity %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and accepts aliases.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text), true)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
