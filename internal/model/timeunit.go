package model

import "fmt"

// TimeUnit qualifies the magnitude of a timestamp. The zero value NoUnit
// means the log line carried no recognised unit suffix.
type TimeUnit uint8

const (
	NoUnit TimeUnit = iota
	Second
	Millisecond
	Microsecond
	Nanosecond
	Picosecond
	Femtosecond
)

var timeUnitCodes = map[string]TimeUnit{
	"s":  Second,
	"ms": Millisecond,
	"us": Microsecond,
	"ns": Nanosecond,
	"ps": Picosecond,
	"fs": Femtosecond,
}

// ParseTimeUnit converts a suffix code such as "ns" to a TimeUnit.
func ParseTimeUnit(code string) (TimeUnit, error) {
	if u, ok := timeUnitCodes[code]; ok {
		return u, nil
	}
	return NoUnit, fmt.Errorf("%q is not a valid time unit", code)
}

// String returns the suffix code, or "" for NoUnit.
func (u TimeUnit) String() string {
	switch u {
	case Second:
		return "s"
	case Millisecond:
		return "ms"
	case Microsecond:
		return "us"
	case Nanosecond:
		return "ns"
	case Picosecond:
		return "ps"
	case Femtosecond:
		return "fs"
	default:
		return ""
	}
}

func (u TimeUnit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *TimeUnit) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*u = NoUnit
		return nil
	}
	v, err := ParseTimeUnit(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}
