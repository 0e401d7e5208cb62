package bench

import (
	"context"
	"iter"
	"slices"
	"sync"
)

// GlobalID is the reserved id of the mark started on the first Get of a registry
const GlobalID = "__global__"

// Registry is a keyed collection of marks kept in insertion order.
//
// A single lock guards the registry and every mark it owns, so statistics
// can pause, measure and resume all marks atomically.
type Registry struct {
	mu     sync.Mutex
	clock  Clock
	logger Logger
	marks  map[string]*Mark
	order  []string
}

// NewRegistry creates an empty registry
func NewRegistry(opts ...Option) *Registry {
	o := buildOptions(opts)
	return &Registry{
		clock:  o.clock,
		logger: o.logger,
		marks:  make(map[string]*Mark),
	}
}

// Get returns the mark registered under id, creating an idle one if needed.
// When the registry is empty, the global mark is created and started first.
func (r *Registry) Get(id string) *Mark {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.marks) == 0 {
		global := r.addLocked(GlobalID)
		// A fresh mark is idle, start cannot fail.
		_ = global.startLocked()
		r.logger.Debugf("started %s mark", GlobalID)
	}

	if m, ok := r.marks[id]; ok {
		return m
	}
	return r.addLocked(id)
}

// Exists reports whether a mark is registered under id
func (r *Registry) Exists(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.marks[id]
	return ok
}

// Remove unregisters the mark under id. Removing an unknown id is a no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.marks[id]; !ok {
		return
	}
	delete(r.marks, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	r.logger.Debugf("removed mark %q", id)
}

// RemoveAll unregisters every mark, the global one included
func (r *Registry) RemoveAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.marks = make(map[string]*Mark)
	r.order = nil
	r.logger.Debugf("removed all marks")
}

// Count returns the number of registered marks
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.marks)
}

// IDs returns the registered ids in insertion order
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.order)
}

// All returns a restartable sequence over the registered marks in insertion
// order. Each iteration works on the ids present when it begins; marks
// removed in the meantime are skipped.
func (r *Registry) All() iter.Seq[*Mark] {
	return func(yield func(*Mark) bool) {
		for _, id := range r.IDs() {
			r.mu.Lock()
			m, ok := r.marks[id]
			r.mu.Unlock()

			if !ok {
				continue
			}
			if !yield(m) {
				return
			}
		}
	}
}

func (r *Registry) addLocked(id string) *Mark {
	m := newMark(id, r.clock, &r.mu)
	r.marks[id] = m
	r.order = append(r.order, id)
	r.logger.Debugf("created mark %q", id)
	return m
}

func (r *Registry) marksLocked() []*Mark {
	marks := make([]*Mark, 0, len(r.order))
	for _, id := range r.order {
		marks = append(marks, r.marks[id])
	}
	return marks
}

var (
	defaultMu       sync.Mutex
	defaultRegistry *Registry
)

// Default returns the process-wide registry, creating it on first use
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultRegistry == nil {
		defaultRegistry = NewRegistry()
	}
	return defaultRegistry
}

// CloseDefault drops the process-wide registry. The next Default call starts afresh.
func CloseDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultRegistry = nil
}

type registryKey struct{}

// WithRegistry returns a context carrying r
func WithRegistry(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, registryKey{}, r)
}

// FromContext returns the registry carried by ctx, or Default when there is none
func FromContext(ctx context.Context) *Registry {
	if r, ok := ctx.Value(registryKey{}).(*Registry); ok && r != nil {
		return r
	}
	return Default()
}
