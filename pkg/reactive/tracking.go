package reactive

import (
	"runtime"
	"sync"
)

// trackingState is the reactive state of one goroutine.
//
// The runtime is single-threaded per goroutine: every goroutine gets its own
// listener stack, owner, batch depth and effect queue. Hosts that touch the
// same signals from several goroutines must serialize through one goroutine
// (see pkg/playground's session loop).
type trackingState struct {
	// listener receives subscriptions for signal reads. nil disables tracking.
	listener Listener

	// owner adopts newly created effects, memos and child owners.
	owner *Owner

	// depth counts open batches and in-flight notifications. Effects only run
	// once it drops back to zero.
	depth int

	// queue holds effects marked dirty while depth > 0.
	queue []*Effect

	// flushing is set while the queue is being drained.
	flushing bool
}

var states sync.Map // goroutine id -> *trackingState

// goroutineID parses the current goroutine's id out of its stack header
// ("goroutine 123 [running]:").
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		c := buf[i]
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}

func state() *trackingState {
	gid := goroutineID()
	if st, ok := states.Load(gid); ok {
		return st.(*trackingState)
	}
	st := &trackingState{}
	states.Store(gid, st)
	return st
}

// Release drops the tracking state of the calling goroutine. Long-lived hosts
// call it when a worker goroutine exits.
func Release() {
	states.Delete(goroutineID())
}

func currentListener() Listener {
	return state().listener
}

func setListener(l Listener) Listener {
	st := state()
	old := st.listener
	st.listener = l
	return old
}

// CurrentOwner returns the owner that adopts reactive primitives created now,
// or nil outside any scope.
func CurrentOwner() *Owner {
	return state().owner
}

func setOwner(o *Owner) *Owner {
	st := state()
	old := st.owner
	st.owner = o
	return old
}

// WithOwner runs fn with o as the current owner.
func WithOwner(o *Owner, fn func()) {
	old := setOwner(o)
	defer setOwner(old)
	fn()
}

// WithListener runs fn with l receiving the subscriptions of every read.
func WithListener(l Listener, fn func()) {
	old := setListener(l)
	defer setListener(old)
	fn()
}

// Untracked runs fn without recording reads as dependencies.
func Untracked(fn func()) {
	WithListener(nil, fn)
}

// Enter makes o the current owner of the calling goroutine until the
// returned function restores the previous one. Prefer WithOwner; Enter is for
// hosts whose scope outlives a single call, such as a test or a session loop.
func Enter(o *Owner) (restore func()) {
	old := setOwner(o)
	return func() { setOwner(old) }
}
