package reactive

import (
	"sync"
	"sync/atomic"
)

// Memo is a lazily recomputed derived value. It is itself a source: readers
// subscribe to it the same way they subscribe to a Signal.
//
// A memo recomputes on the first Get after any of its sources changed.
// Invalidation propagates to the memo's subscribers immediately, so effects
// depending on it are queued in the same notification pass as the write.
type Memo[T any] struct {
	base signalBase

	compute func() T

	mu    sync.RWMutex
	value T

	valid     atomic.Bool
	computing atomic.Bool
	disposed  atomic.Bool

	sourcesMu sync.Mutex
	sources   []*signalBase

	computations atomic.Uint64
}

// NewMemo returns a memo over compute. Nothing runs until the first read.
// When created under an owner the memo releases its subscriptions when the
// owner is disposed.
func NewMemo[T any](compute func() T) *Memo[T] {
	m := &Memo[T]{
		base:    signalBase{id: nextID()},
		compute: compute,
	}
	if o := CurrentOwner(); o != nil {
		o.OnCleanup(m.dispose)
	}
	return m
}

// Derive wraps a plain function so that its reads join the dependency graph
// like a native signal.
func Derive[T any](fn func() T) *Memo[T] {
	return NewMemo(fn)
}

// Get returns the current value, recomputing if stale, and subscribes the
// current listener.
func (m *Memo[T]) Get() T {
	m.base.track()
	return m.Peek()
}

// Peek returns the current value without subscribing. It still recomputes a
// stale value.
func (m *Memo[T]) Peek() T {
	if !m.valid.Load() {
		m.recompute()
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value
}

// MarkDirty invalidates the cached value and forwards the invalidation.
func (m *Memo[T]) MarkDirty() {
	if m.disposed.Load() {
		return
	}
	if m.valid.CompareAndSwap(true, false) {
		m.base.notify()
	}
}

// ID returns the memo's identifier.
func (m *Memo[T]) ID() uint64 {
	return m.base.id
}

// Computations reports how many times compute has run.
func (m *Memo[T]) Computations() uint64 {
	return m.computations.Load()
}

func (m *Memo[T]) addSource(source *signalBase) {
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()
	for _, s := range m.sources {
		if s == source {
			return
		}
	}
	m.sources = append(m.sources, source)
}

func (m *Memo[T]) dropSources() {
	m.sourcesMu.Lock()
	sources := m.sources
	m.sources = nil
	m.sourcesMu.Unlock()

	for _, s := range sources {
		s.unsubscribe(m)
	}
}

func (m *Memo[T]) recompute() {
	// A cycle back into this memo reads the previous value.
	if m.computing.Swap(true) {
		return
	}
	defer m.computing.Store(false)

	m.dropSources()

	var v T
	WithListener(m, func() {
		v = m.compute()
	})
	m.computations.Add(1)

	m.mu.Lock()
	m.value = v
	m.mu.Unlock()

	if !m.disposed.Load() {
		m.valid.Store(true)
	}
}

func (m *Memo[T]) dispose() {
	if m.disposed.Swap(true) {
		return
	}
	m.valid.Store(false)
	m.dropSources()
}

var _ sourceTracker = (*Memo[bool])(nil)
