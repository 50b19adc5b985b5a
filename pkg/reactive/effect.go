package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect is a side effect that re-runs whenever something it read changes.
//
// Re-runs are synchronous with the write that caused them: once the
// outermost Set or Batch finishes notifying, queued effects run on the same
// goroutine before the write returns. An effect never runs concurrently with
// itself; a change observed while it runs queues exactly one more run.
type Effect struct {
	id uint64

	fn      func() Cleanup
	cleanup Cleanup
	owner   *Owner

	sourcesMu sync.Mutex
	sources   []*signalBase

	pending  atomic.Bool
	running  atomic.Bool
	disposed atomic.Bool
	runs     atomic.Uint64
}

// CreateEffect registers fn with the current owner and runs it immediately.
//
//	reactive.CreateEffect(func() reactive.Cleanup {
//	    log.Println("admin:", admin.Get())
//	    return nil
//	})
func CreateEffect(fn func() Cleanup) *Effect {
	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: CurrentOwner(),
	}
	if e.owner != nil {
		e.owner.adoptEffect(e)
	}
	e.run()
	return e
}

// MarkDirty queues the effect for a re-run.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}
	if e.pending.CompareAndSwap(false, true) {
		enqueue(e)
	}
}

// ID returns the effect's identifier.
func (e *Effect) ID() uint64 {
	return e.id
}

// Runs reports how many times the effect body has executed.
func (e *Effect) Runs() uint64 {
	return e.runs.Load()
}

// Dispose stops the effect, runs its last cleanup and drops subscriptions.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}
	if e.cleanup != nil {
		c := e.cleanup
		e.cleanup = nil
		c()
	}
	e.dropSources()
}

// run executes the body, repeating while a change arrived during the
// previous pass. A nested call while the body is executing returns at once;
// the outer loop picks the pending change up.
func (e *Effect) run() {
	if e.disposed.Load() || !e.running.CompareAndSwap(false, true) {
		return
	}
	defer e.running.Store(false)

	for {
		e.pending.Store(false)
		e.once()
		if e.disposed.Load() || !e.pending.Load() {
			return
		}
	}
}

func (e *Effect) once() {
	if e.cleanup != nil {
		c := e.cleanup
		e.cleanup = nil
		c()
	}
	e.dropSources()

	var cleanup Cleanup
	WithOwner(e.owner, func() {
		WithListener(e, func() {
			cleanup = e.fn()
		})
	})
	e.cleanup = cleanup
	e.runs.Add(1)
}

func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()
	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

func (e *Effect) dropSources() {
	e.sourcesMu.Lock()
	sources := e.sources
	e.sources = nil
	e.sourcesMu.Unlock()

	for _, s := range sources {
		s.unsubscribe(e)
	}
}

var _ sourceTracker = (*Effect)(nil)
