// Package filter decides which log lines are kept by id, severity and
// component.
package filter

import (
	"iter"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Raamakrishnan/ulog/internal/errors"
	"github.com/Raamakrishnan/ulog/internal/model"
)

// Filter is a pure predicate over lines. Each criterion is optional; a nil
// set is absent. A line is kept when it matches every present criterion.
// With no criterion present nothing is kept: callers that want every line
// pass AllSeverities.
type Filter struct {
	IDs        map[string]struct{}
	Severities map[model.Severity]struct{}
	Components []string // doublestar patterns over the dotted component path
}

// Option configures a Filter.
type Option func(*Filter) error

// New builds a Filter from opts.
func New(opts ...Option) (*Filter, error) {
	f := &Filter{}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// WithIDs adds ids to the accepted id set, creating it if absent.
func WithIDs(ids ...string) Option {
	return func(f *Filter) error {
		if f.IDs == nil {
			f.IDs = make(map[string]struct{}, len(ids))
		}
		for _, id := range ids {
			f.IDs[id] = struct{}{}
		}
		return nil
	}
}

// WithSeverities adds severities to the accepted severity set, creating it
// if absent.
func WithSeverities(sevs ...model.Severity) Option {
	return func(f *Filter) error {
		if f.Severities == nil {
			f.Severities = make(map[model.Severity]struct{}, len(sevs))
		}
		for _, s := range sevs {
			f.Severities[s] = struct{}{}
		}
		return nil
	}
}

// AllSeverities is the full severity set. It keeps every line when it is the
// only criterion.
func AllSeverities() Option {
	return WithSeverities(model.Severities...)
}

// WithComponents adds component patterns such as "uvm_test_top.**.driver".
// Dots separate hierarchy levels; "*" matches one level and "**" any number.
func WithComponents(patterns ...string) Option {
	return func(f *Filter) error {
		for _, p := range patterns {
			if !doublestar.ValidatePattern(componentPath(p)) {
				return errors.Errorf("invalid component pattern %q", p)
			}
			f.Components = append(f.Components, p)
		}
		if f.Components == nil {
			f.Components = []string{}
		}
		return nil
	}
}

// Present reports whether any criterion is set.
func (f *Filter) Present() bool {
	return f.IDs != nil || f.Severities != nil || f.Components != nil
}

// Keep reports whether line passes the filter.
func (f *Filter) Keep(line model.Line) bool {
	if !f.Present() {
		return false
	}
	if f.IDs != nil {
		if _, ok := f.IDs[line.ID]; !ok {
			return false
		}
	}
	if f.Severities != nil {
		if _, ok := f.Severities[line.Severity]; !ok {
			return false
		}
	}
	if f.Components != nil && !f.matchComponent(line.Component) {
		return false
	}
	return true
}

func (f *Filter) matchComponent(component string) bool {
	path := componentPath(component)
	for _, p := range f.Components {
		// patterns are validated in WithComponents
		if ok, _ := doublestar.Match(componentPath(p), path); ok {
			return true
		}
	}
	return false
}

// Apply yields the lines of log kept by f, in log order.
func Apply(log *model.Log, f *Filter) iter.Seq[model.Line] {
	return log.Filter(f.Keep)
}

// componentPath maps hierarchy dots to the path separator doublestar expects.
func componentPath(s string) string {
	return strings.ReplaceAll(s, ".", "/")
}
