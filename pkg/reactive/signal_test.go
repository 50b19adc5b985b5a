package reactive

import (
	"sync/atomic"
	"testing"
)

// countingListener records MarkDirty calls.
type countingListener struct {
	id    uint64
	dirty atomic.Int32
}

func newCountingListener() *countingListener {
	return &countingListener{id: nextID()}
}

func (l *countingListener) MarkDirty() { l.dirty.Add(1) }
func (l *countingListener) ID() uint64 { return l.id }

func TestSignalGetSetUpdate(t *testing.T) {
	s := NewSignal(1)
	if got := s.Get(); got != 1 {
		t.Errorf("Get() = %d, want 1", got)
	}

	s.Set(4)
	if got := s.Peek(); got != 4 {
		t.Errorf("Peek() = %d, want 4", got)
	}

	s.Update(func(n int) int { return n + 1 })
	if got := s.Get(); got != 5 {
		t.Errorf("Get() after Update = %d, want 5", got)
	}
}

func TestSignalTrackedRead(t *testing.T) {
	s := NewSignal(false)
	l := newCountingListener()

	WithListener(l, func() { _ = s.Get() })
	if s.Subscribers() != 1 {
		t.Fatalf("Subscribers() = %d, want 1", s.Subscribers())
	}

	s.Set(true)
	if got := l.dirty.Load(); got != 1 {
		t.Errorf("dirty count = %d, want 1", got)
	}

	// Same value: no notification.
	s.Set(true)
	if got := l.dirty.Load(); got != 1 {
		t.Errorf("dirty count after equal Set = %d, want 1", got)
	}
}

func TestSignalPeekDoesNotTrack(t *testing.T) {
	s := NewSignal("a")
	l := newCountingListener()

	WithListener(l, func() { _ = s.Peek() })
	Untracked(func() { _ = s.Get() })

	s.Set("b")
	if got := l.dirty.Load(); got != 0 {
		t.Errorf("dirty count = %d, want 0", got)
	}
}

func TestSignalDuplicateSubscription(t *testing.T) {
	s := NewSignal(0)
	l := newCountingListener()

	WithListener(l, func() {
		_ = s.Get()
		_ = s.Get()
		_ = s.Get()
	})
	if s.Subscribers() != 1 {
		t.Errorf("Subscribers() = %d, want 1", s.Subscribers())
	}
}

func TestSignalWithEquals(t *testing.T) {
	s := NewSignal(1).WithEquals(func(a, b int) bool { return false })
	l := newCountingListener()
	WithListener(l, func() { _ = s.Get() })

	s.Set(1)
	s.Set(1)
	if got := l.dirty.Load(); got != 2 {
		t.Errorf("dirty count = %d, want 2", got)
	}
}

func TestDefaultEquals(t *testing.T) {
	fn := func() {}
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"equal ints", 1, 1, true},
		{"different strings", "a", "b", false},
		{"equal slices", []int{1, 2}, []int{1, 2}, true},
		{"different maps", map[string]int{"a": 1}, map[string]int{"a": 2}, false},
		{"both nil", nil, nil, true},
		{"one nil", nil, 1, false},
		{"funcs never equal", fn, fn, false},
		{"mixed types", 1, int64(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultEquals(tt.a, tt.b); got != tt.want {
				t.Errorf("defaultEquals(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
