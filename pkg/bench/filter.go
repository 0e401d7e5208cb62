package bench

import "time"

// Filter decides whether a mark appears in a snapshot
type Filter interface {
	Evaluate(id string, elapsed time.Duration, percent float64) bool
}

// FilterFunc adapts a function to the Filter interface
type FilterFunc func(id string, elapsed time.Duration, percent float64) bool

// Evaluate implements Filter
func (f FilterFunc) Evaluate(id string, elapsed time.Duration, percent float64) bool {
	return f(id, elapsed, percent)
}

// accept applies filters in order and stops at the first rejection
func accept(filters []Filter, st Stat) bool {
	for _, f := range filters {
		if !f.Evaluate(st.ID, st.Elapsed, st.Percent) {
			return false
		}
	}
	return true
}
