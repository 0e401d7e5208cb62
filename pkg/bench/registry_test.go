package bench

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Debugf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func collect(r *Registry) []string {
	var ids []string
	for m := range r.All() {
		ids = append(ids, m.ID())
	}
	return ids
}

func TestRegistry_AutoVivification(t *testing.T) {
	r := NewRegistry(WithClock(newFakeClock()))

	m := r.Get("parse")
	require.NotNil(t, m)
	assert.Equal(t, "parse", m.ID())
	assert.Equal(t, Idle, m.State())

	assert.Same(t, m, r.Get("parse"))
	assert.Equal(t, 2, r.Count())
}

func TestRegistry_GlobalMark(t *testing.T) {
	clock := newFakeClock()
	r := NewRegistry(WithClock(clock))
	assert.False(t, r.Exists(GlobalID))

	r.Get("first")
	require.True(t, r.Exists(GlobalID))

	global := r.Get(GlobalID)
	assert.Equal(t, Running, global.State())

	clock.Advance(time.Second)
	d1 := global.Diff()
	clock.Advance(time.Second)
	d2 := global.Diff()
	assert.Equal(t, time.Second, d1)
	assert.Greater(t, d2, d1)

	assert.Equal(t, []string{GlobalID, "first"}, r.IDs())
}

func TestRegistry_GlobalMarkOnDirectAccess(t *testing.T) {
	r := NewRegistry(WithClock(newFakeClock()))

	global := r.Get(GlobalID)
	assert.Equal(t, Running, global.State())
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_ExistsAndRemove(t *testing.T) {
	r := NewRegistry(WithClock(newFakeClock()))
	r.Get("a")
	r.Get("b")

	assert.True(t, r.Exists("a"))
	assert.False(t, r.Exists("missing"))

	r.Remove("a")
	assert.False(t, r.Exists("a"))
	assert.Equal(t, []string{GlobalID, "b"}, r.IDs())

	// Removing an unknown id is a no-op
	r.Remove("missing")
	assert.Equal(t, 2, r.Count())
}

func TestRegistry_RemoveAll(t *testing.T) {
	r := NewRegistry(WithClock(newFakeClock()))
	r.Get("a")
	r.Get("b")

	r.RemoveAll()
	assert.Equal(t, 0, r.Count())
	assert.Empty(t, collect(r))

	// The next access starts a new global mark
	r.Get("c")
	assert.Equal(t, []string{GlobalID, "c"}, r.IDs())
	assert.Equal(t, Running, r.Get(GlobalID).State())
}

func TestRegistry_AllInsertionOrder(t *testing.T) {
	r := NewRegistry(WithClock(newFakeClock()))
	for _, id := range []string{"z", "a", "m"} {
		r.Get(id)
	}

	want := []string{GlobalID, "z", "a", "m"}
	assert.Equal(t, want, collect(r))
	// Restartable
	assert.Equal(t, want, collect(r))
}

func TestRegistry_AllEarlyBreak(t *testing.T) {
	r := NewRegistry(WithClock(newFakeClock()))
	r.Get("a")
	r.Get("b")

	var seen []string
	for m := range r.All() {
		seen = append(seen, m.ID())
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{GlobalID, "a"}, seen)
}

func TestRegistry_AllSkipsRemovedMarks(t *testing.T) {
	r := NewRegistry(WithClock(newFakeClock()))
	r.Get("a")
	r.Get("b")

	var seen []string
	for m := range r.All() {
		seen = append(seen, m.ID())
		if m.ID() == GlobalID {
			r.Remove("a")
		}
	}
	assert.Equal(t, []string{GlobalID, "b"}, seen)
}

func TestRegistry_MarksShareClock(t *testing.T) {
	clock := newFakeClock()
	r := NewRegistry(WithClock(clock))

	m := r.Get("a")
	require.NoError(t, m.Start())
	clock.Advance(250 * time.Millisecond)
	require.NoError(t, m.Stop())

	assert.Equal(t, 250*time.Millisecond, m.Diff())
}

func TestRegistry_Logger(t *testing.T) {
	log := &recordingLogger{}
	r := NewRegistry(WithClock(newFakeClock()), WithLogger(log))

	r.Get("a")
	r.Remove("a")
	r.RemoveAll()

	joined := fmt.Sprint(log.lines)
	assert.Contains(t, joined, `created mark "__global__"`)
	assert.Contains(t, joined, "started __global__ mark")
	assert.Contains(t, joined, `created mark "a"`)
	assert.Contains(t, joined, `removed mark "a"`)
	assert.Contains(t, joined, "removed all marks")
}

func TestRegistry_Default(t *testing.T) {
	t.Cleanup(CloseDefault)

	r := Default()
	assert.Same(t, r, Default())

	CloseDefault()
	assert.NotSame(t, r, Default())
}

func TestRegistry_Context(t *testing.T) {
	t.Cleanup(CloseDefault)

	r := NewRegistry()
	ctx := WithRegistry(context.Background(), r)
	assert.Same(t, r, FromContext(ctx))
	assert.Same(t, Default(), FromContext(context.Background()))
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	r := NewRegistry()
	stats := NewStatistics(r)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			m := r.Get(fmt.Sprintf("worker-%d", n))
			for j := 0; j < 50; j++ {
				assert.NoError(t, m.Start())
				assert.NoError(t, m.Pause())
				assert.NoError(t, m.Start())
				assert.NoError(t, m.Stop())
				_ = stats.Snapshot(false)
			}
		}(i)
	}
	wg.Wait()

	ids := r.IDs()
	assert.Len(t, ids, 9)
	assert.True(t, slices.Contains(ids, GlobalID))
	for m := range r.All() {
		if m.ID() != GlobalID {
			assert.Equal(t, Idle, m.State())
		}
	}
}
