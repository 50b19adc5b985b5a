package reactive

import "testing"

func TestMemoLazy(t *testing.T) {
	s := NewSignal(2)
	m := NewMemo(func() int { return s.Get() * 10 })

	if m.Computations() != 0 {
		t.Fatalf("memo computed before first read")
	}
	if got := m.Get(); got != 20 {
		t.Errorf("Get() = %d, want 20", got)
	}
	_ = m.Get()
	if m.Computations() != 1 {
		t.Errorf("Computations() = %d, want 1", m.Computations())
	}

	s.Set(3)
	if got := m.Get(); got != 30 {
		t.Errorf("Get() after Set = %d, want 30", got)
	}
	if m.Computations() != 2 {
		t.Errorf("Computations() = %d, want 2", m.Computations())
	}
}

func TestMemoPropagatesToListener(t *testing.T) {
	s := NewSignal(false)
	m := Derive(func() bool { return !s.Get() })
	l := newCountingListener()

	WithListener(l, func() { _ = m.Get() })
	s.Set(true)

	if got := l.dirty.Load(); got != 1 {
		t.Errorf("dirty count = %d, want 1", got)
	}
	if m.Get() {
		t.Errorf("Get() = true, want false")
	}
}

func TestMemoDisposedWithOwner(t *testing.T) {
	s := NewSignal(1)
	root := NewOwner(nil)

	var m *Memo[int]
	root.Run(func() {
		m = NewMemo(func() int { return s.Get() })
	})
	_ = m.Get()
	if s.Subscribers() != 1 {
		t.Fatalf("Subscribers() = %d, want 1", s.Subscribers())
	}

	root.Dispose()
	if s.Subscribers() != 0 {
		t.Errorf("Subscribers() after dispose = %d, want 0", s.Subscribers())
	}
}

func TestMemoChain(t *testing.T) {
	s := NewSignal(1)
	a := NewMemo(func() int { return s.Get() + 1 })
	b := NewMemo(func() int { return a.Get() * 2 })

	if got := b.Get(); got != 4 {
		t.Errorf("b = %d, want 4", got)
	}
	s.Set(5)
	if got := b.Get(); got != 12 {
		t.Errorf("b after Set = %d, want 12", got)
	}
}
