// Package filter provides the report filters that can be declared in a bench
// configuration file
package filter

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/hoaproject/Bench/pkg/bench"
)

// MinPercent keeps marks at or above a share of the longest mark
type MinPercent struct {
	Value float64
}

// Evaluate implements bench.Filter
func (f MinPercent) Evaluate(_ string, _ time.Duration, percent float64) bool {
	return percent >= f.Value
}

func (f MinPercent) String() string { return fmt.Sprintf("percent >= %g", f.Value) }

// MaxPercent keeps marks at or below a share of the longest mark
type MaxPercent struct {
	Value float64
}

// Evaluate implements bench.Filter
func (f MaxPercent) Evaluate(_ string, _ time.Duration, percent float64) bool {
	return percent <= f.Value
}

func (f MaxPercent) String() string { return fmt.Sprintf("percent <= %g", f.Value) }

// MinElapsed keeps marks that measured at least Value
type MinElapsed struct {
	Value time.Duration
}

// Evaluate implements bench.Filter
func (f MinElapsed) Evaluate(_ string, elapsed time.Duration, _ float64) bool {
	return elapsed >= f.Value
}

func (f MinElapsed) String() string { return fmt.Sprintf("elapsed >= %s", f.Value) }

// MaxElapsed keeps marks that measured at most Value
type MaxElapsed struct {
	Value time.Duration
}

// Evaluate implements bench.Filter
func (f MaxElapsed) Evaluate(_ string, elapsed time.Duration, _ float64) bool {
	return elapsed <= f.Value
}

func (f MaxElapsed) String() string { return fmt.Sprintf("elapsed <= %s", f.Value) }

// Match keeps marks whose id matches a glob pattern (path.Match syntax)
type Match struct {
	Pattern string
}

// Evaluate implements bench.Filter. A malformed pattern matches nothing.
func (f Match) Evaluate(id string, _ time.Duration, _ float64) bool {
	ok, err := path.Match(f.Pattern, id)
	return err == nil && ok
}

func (f Match) String() string { return fmt.Sprintf("id matches %q", f.Pattern) }

// All keeps marks accepted by every filter (AND logic)
type All struct {
	Filters []bench.Filter
}

// Evaluate implements bench.Filter
func (f All) Evaluate(id string, elapsed time.Duration, percent float64) bool {
	for _, sub := range f.Filters {
		if !sub.Evaluate(id, elapsed, percent) {
			return false
		}
	}
	return true
}

func (f All) String() string { return join("all", f.Filters) }

// Any keeps marks accepted by at least one filter (OR logic)
type Any struct {
	Filters []bench.Filter
}

// Evaluate implements bench.Filter
func (f Any) Evaluate(id string, elapsed time.Duration, percent float64) bool {
	for _, sub := range f.Filters {
		if sub.Evaluate(id, elapsed, percent) {
			return true
		}
	}
	return false
}

func (f Any) String() string { return join("any", f.Filters) }

// Not inverts a filter
type Not struct {
	Filter bench.Filter
}

// Evaluate implements bench.Filter
func (f Not) Evaluate(id string, elapsed time.Duration, percent float64) bool {
	return !f.Filter.Evaluate(id, elapsed, percent)
}

func (f Not) String() string { return fmt.Sprintf("not(%s)", describe(f.Filter)) }

// describe returns a readable form of f
func describe(f bench.Filter) string {
	if s, ok := f.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", f)
}

func join(op string, filters []bench.Filter) string {
	parts := make([]string, len(filters))
	for i, f := range filters {
		parts[i] = describe(f)
	}
	return op + "(" + strings.Join(parts, ", ") + ")"
}
