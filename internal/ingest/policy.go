package ingest

import (
	"fmt"
	"strings"
)

// Policy decides what happens when a line fails to parse.
type Policy uint8

const (
	// Skip logs a diagnostic and continues with the next line.
	Skip Policy = iota
	// Fail stops ingestion at the first malformed line.
	Fail
	// Collect continues and returns every failure once the input is exhausted.
	Collect
)

func (p Policy) String() string {
	switch p {
	case Skip:
		return "skip"
	case Fail:
		return "fail"
	case Collect:
		return "collect"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// ParsePolicy converts a policy name such as "skip" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return Skip, nil
	case "fail":
		return Fail, nil
	case "collect":
		return Collect, nil
	default:
		return 0, fmt.Errorf("unknown error policy %q (want skip, fail or collect)", s)
	}
}
