package bench

import (
	"errors"
	"slices"
	"time"
)

// Stat is the measurement of one mark within a snapshot
type Stat struct {
	ID      string
	Elapsed time.Duration
	// Percent is relative to the longest mark of the snapshot
	Percent float64
}

// Seconds returns the elapsed time in seconds
func (s Stat) Seconds() float64 {
	return s.Elapsed.Seconds()
}

// Milliseconds returns the elapsed time rounded to whole milliseconds
func (s Stat) Milliseconds() int64 {
	return roundMillis(s.Elapsed)
}

// Snapshot holds the stats of a registry at a point in time, in registry order
type Snapshot []Stat

// Lookup returns the stat of the mark id
func (s Snapshot) Lookup(id string) (Stat, bool) {
	i := slices.IndexFunc(s, func(st Stat) bool { return st.ID == id })
	if i < 0 {
		return Stat{}, false
	}
	return s[i], true
}

// IDs returns the ids of the snapshot in order
func (s Snapshot) IDs() []string {
	ids := make([]string, len(s))
	for i, st := range s {
		ids[i] = st.ID
	}
	return ids
}

// Statistics computes snapshots over a registry. Filters belong to the
// statistics view, not to the registry.
type Statistics struct {
	registry *Registry
	filters  []Filter
}

// NewStatistics creates a statistics view over r
func NewStatistics(r *Registry, filters ...Filter) *Statistics {
	return &Statistics{
		registry: r,
		filters:  slices.Clone(filters),
	}
}

// Registry returns the observed registry
func (s *Statistics) Registry() *Registry {
	return s.registry
}

// AddFilter appends a filter. Filters run in insertion order.
func (s *Statistics) AddFilter(f Filter) *Statistics {
	s.filters = append(s.filters, f)
	return s
}

// Filters returns the registered filters
func (s *Statistics) Filters() []Filter {
	return slices.Clone(s.filters)
}

// PauseAll pauses every running mark and returns those marks, in registry
// order, so they can be handed back to ResumeAll.
func (s *Statistics) PauseAll() []*Mark {
	s.registry.mu.Lock()
	defer s.registry.mu.Unlock()
	return s.pauseAllLocked()
}

// ResumeAll restarts marks returned by PauseAll
func (s *Statistics) ResumeAll(marks []*Mark) error {
	s.registry.mu.Lock()
	defer s.registry.mu.Unlock()
	return s.resumeAllLocked(marks)
}

// Longest returns the mark with the largest diff, the first one on ties.
// It returns nil for an empty registry.
func (s *Statistics) Longest() *Mark {
	s.registry.mu.Lock()
	defer s.registry.mu.Unlock()
	return longestOf(s.registry.marksLocked())
}

// Snapshot measures every mark. Running marks are paused for the duration of
// the computation and resumed before returning, so the measurement does not
// disturb them. When all marks measured zero, every percent is zero.
// Filters run after the registry lock is released, so they may use the
// registry and its marks.
func (s *Statistics) Snapshot(applyFilters bool) Snapshot {
	snap := s.measure()
	if !applyFilters {
		return snap
	}
	return slices.DeleteFunc(snap, func(st Stat) bool {
		return !accept(s.filters, st)
	})
}

func (s *Statistics) measure() Snapshot {
	s.registry.mu.Lock()
	defer s.registry.mu.Unlock()

	marks := s.registry.marksLocked()
	if len(marks) == 0 {
		return Snapshot{}
	}

	paused := s.pauseAllLocked()
	longest := longestOf(marks).diffLocked()

	snap := make(Snapshot, 0, len(marks))
	for _, m := range marks {
		st := Stat{ID: m.id, Elapsed: m.diffLocked()}
		if longest != 0 {
			st.Percent = float64(st.Elapsed) / float64(longest) * 100
		}
		snap = append(snap, st)
	}

	// Marks were paused by us a moment ago, resuming cannot fail.
	_ = s.resumeAllLocked(paused)
	return snap
}

func (s *Statistics) pauseAllLocked() []*Mark {
	var paused []*Mark
	for _, m := range s.registry.marksLocked() {
		if m.stateLocked() != Running {
			continue
		}
		if ok, _ := m.pauseLocked(true); ok {
			paused = append(paused, m)
		}
	}
	return paused
}

func (s *Statistics) resumeAllLocked(marks []*Mark) error {
	var errs []error
	for _, m := range marks {
		var err error
		if m.mu == &s.registry.mu {
			err = m.startLocked()
		} else {
			err = m.Start()
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func longestOf(marks []*Mark) *Mark {
	var longest *Mark
	var most time.Duration
	for _, m := range marks {
		d := m.diffLocked()
		if longest == nil || d > most {
			longest = m
			most = d
		}
	}
	return longest
}
