// Package bench measures elapsed wall-clock time across named marks and
// reports how the marks compare to each other.
//
// A Mark is a timer with three states: idle, running and paused. Marks are
// usually obtained by name from a Registry, which creates them on first use:
//
//	r := bench.NewRegistry()
//	_ = r.Get("parse").Start()
//	parse()
//	_ = r.Get("parse").Stop()
//	report, _ := bench.NewStatistics(r).Render(bench.DefaultWidth)
package bench

import (
	"strconv"
	"sync"
	"time"

	"github.com/hoaproject/Bench/internal/derrors"
)

// State is the lifecycle state of a mark
type State int

const (
	// Idle marks were never started, were reset, or were stopped
	Idle State = iota
	// Running marks accumulate elapsed time
	Running
	// Paused marks are started but do not accumulate time
	Paused
)

// String returns the state name
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Mark is a named timer tracking active (non-paused) elapsed time.
//
// Marks owned by a Registry share the registry lock; standalone marks carry
// their own.
type Mark struct {
	id    string
	clock Clock
	mu    *sync.Mutex

	startedAt time.Time
	// stoppedAt is also the time of the last pause
	stoppedAt time.Time
	pausedFor time.Duration
	started   bool
	paused    bool
}

// NewMark creates a standalone idle mark. The id may be empty.
func NewMark(id string, opts ...Option) *Mark {
	o := buildOptions(opts)
	return newMark(id, o.clock, &sync.Mutex{})
}

func newMark(id string, clock Clock, mu *sync.Mutex) *Mark {
	return &Mark{id: id, clock: clock, mu: mu}
}

// ID returns the mark identifier
func (m *Mark) ID() string {
	return m.id
}

// Start starts an idle mark or resumes a paused one.
// Starting a running mark fails with *AlreadyStartedError.
func (m *Mark) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startLocked()
}

// Stop freezes the mark; Diff keeps reporting the measured time until the next
// Start or Reset. Stopping a paused mark does not count the pending pause, so
// Diff stays at the time measured when it was paused. Stopping an idle mark
// fails with *NotStartedError.
func (m *Mark) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.stopLocked(false)
	return err
}

// TryStop is Stop without the idle check. It reports whether the mark was stopped.
func (m *Mark) TryStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	stopped, _ := m.stopLocked(true)
	return stopped
}

// Pause suspends a running mark. It fails with *NotStartedError on an idle
// mark and with *AlreadyPausedError on a paused one.
func (m *Mark) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.pauseLocked(false)
	return err
}

// TryPause pauses the mark if it is running. It reports whether the mark was paused.
func (m *Mark) TryPause() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	paused, _ := m.pauseLocked(true)
	return paused
}

// Reset returns the mark to the idle state and clears every measurement
func (m *Mark) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
}

// Diff returns the elapsed time excluding pauses. It is live while the mark runs.
func (m *Mark) Diff() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.diffLocked()
}

// Seconds returns Diff as floating-point seconds
func (m *Mark) Seconds() float64 {
	return m.Diff().Seconds()
}

// Compare returns -1, 0 or 1 when m measured less, as much or more time than other
func (m *Mark) Compare(other *Mark) int {
	a := m.Diff()
	b := other.Diff()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// State returns the current lifecycle state
func (m *Mark) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

// Running reports whether the mark is started, paused or not
func (m *Mark) Running() bool {
	return m.State() != Idle
}

// Paused reports whether the mark is paused
func (m *Mark) Paused() bool {
	return m.State() == Paused
}

// String returns the elapsed seconds as a decimal string
func (m *Mark) String() string {
	return strconv.FormatFloat(m.Seconds(), 'f', -1, 64)
}

func (m *Mark) stateLocked() State {
	switch {
	case m.paused:
		return Paused
	case m.started:
		return Running
	default:
		return Idle
	}
}

func (m *Mark) startLocked() error {
	if m.started && !m.paused {
		return derrors.NewAlreadyStartedError(m.id)
	}

	now := m.clock.Now()
	if m.paused {
		m.pausedFor += now.Sub(m.stoppedAt)
	} else {
		m.resetLocked()
		m.startedAt = now
	}

	m.started = true
	m.paused = false
	return nil
}

func (m *Mark) stopLocked(silent bool) (bool, error) {
	if !m.started {
		if silent {
			return false, nil
		}
		return false, derrors.NewNotStartedError(m.id, "stop")
	}

	now := m.clock.Now()
	if m.paused {
		// Close the pending pause so the frozen diff only holds active time.
		m.pausedFor += now.Sub(m.stoppedAt)
	}
	m.stoppedAt = now
	m.started = false
	m.paused = false
	return true, nil
}

func (m *Mark) pauseLocked(silent bool) (bool, error) {
	if !m.started {
		if silent {
			return false, nil
		}
		return false, derrors.NewNotStartedError(m.id, "pause")
	}
	if m.paused {
		if silent {
			return false, nil
		}
		return false, derrors.NewAlreadyPausedError(m.id)
	}

	m.stoppedAt = m.clock.Now()
	m.paused = true
	return true, nil
}

func (m *Mark) resetLocked() {
	m.startedAt = time.Time{}
	m.stoppedAt = time.Time{}
	m.pausedFor = 0
	m.started = false
	m.paused = false
}

func (m *Mark) diffLocked() time.Duration {
	if m.started && !m.paused {
		return m.clock.Now().Sub(m.startedAt) - m.pausedFor
	}
	return m.stoppedAt.Sub(m.startedAt) - m.pausedFor
}
