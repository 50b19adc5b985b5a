package reactive

import (
	"reflect"
	"sync"
)

// signalBase is the subscriber list shared by Signal and Memo.
type signalBase struct {
	id uint64

	mu   sync.RWMutex
	subs []Listener
}

func (s *signalBase) subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lid := l.ID()
	for _, existing := range s.subs {
		if existing.ID() == lid {
			return
		}
	}
	s.subs = append(s.subs, l)
}

func (s *signalBase) unsubscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lid := l.ID()
	for i, existing := range s.subs {
		if existing.ID() == lid {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

func (s *signalBase) subscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// track subscribes the current listener, if any.
func (s *signalBase) track() {
	l := currentListener()
	if l == nil {
		return
	}
	s.subscribe(l)
	if t, ok := l.(sourceTracker); ok {
		t.addSource(s)
	}
}

// notify marks every subscriber dirty. Effects reached through the
// notification (directly or through memos) run after the whole pass, in the
// order they were first marked.
func (s *signalBase) notify() {
	s.mu.RLock()
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	if len(subs) == 0 {
		return
	}

	st := state()
	st.depth++
	defer func() {
		st.depth--
		if st.depth == 0 {
			flush(st)
		}
	}()
	for _, sub := range subs {
		sub.MarkDirty()
	}
}

// Signal is a reactive value cell. Reads through Get inside a tracked scope
// (memo computation or effect run) subscribe that scope to later writes.
type Signal[T any] struct {
	base signalBase

	mu    sync.RWMutex
	value T
	equal func(a, b T) bool
}

// NewSignal returns a signal holding initial.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		base:  signalBase{id: nextID()},
		value: initial,
	}
}

// Get returns the value and subscribes the current listener.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	v := s.value
	s.mu.RUnlock()

	s.base.track()
	return v
}

// Peek returns the value without subscribing.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores v and notifies subscribers when it differs from the old value.
// The swap is atomic: readers observe either the old or the new value.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	changed := !s.equals(s.value, v)
	if changed {
		s.value = v
	}
	s.mu.Unlock()

	if changed {
		s.base.notify()
	}
}

// Update replaces the value with fn(old).
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	old := s.value
	v := fn(old)
	changed := !s.equals(old, v)
	if changed {
		s.value = v
	}
	s.mu.Unlock()

	if changed {
		s.base.notify()
	}
}

// WithEquals replaces the change detection used by Set and Update.
// A function that always returns false makes every write notify.
func (s *Signal[T]) WithEquals(fn func(a, b T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the signal's identifier.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}

// Subscribers reports how many listeners currently depend on the signal.
func (s *Signal[T]) Subscribers() int {
	return s.base.subscriberCount()
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for scalars, strings and pointers and
// reflect.DeepEqual for composite values. Functions never compare equal
// unless both are nil.
func defaultEquals[T any](a, b T) bool {
	av, bv := any(a), any(b)
	if av == nil || bv == nil {
		return av == nil && bv == nil
	}
	ta := reflect.TypeOf(av)
	if ta != reflect.TypeOf(bv) {
		return false
	}
	switch ta.Kind() {
	case reflect.Func:
		va, vb := reflect.ValueOf(av), reflect.ValueOf(bv)
		return va.IsNil() && vb.IsNil()
	case reflect.Struct, reflect.Array, reflect.Interface, reflect.Slice, reflect.Map:
		return reflect.DeepEqual(av, bv)
	default:
		return av == bv
	}
}
