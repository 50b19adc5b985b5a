package declarative_test

import (
	"strings"
	"testing"

	. "github.com/vango-dev/declarative/pkg/declarative"
	"github.com/vango-dev/declarative/pkg/reactive"
	"github.com/vango-dev/declarative/pkg/vdom"
	"github.com/vango-dev/declarative/pkg/vtest"
)

func text(s string) Content {
	return Static(vdom.Span(s))
}

func TestIf_ThenWhenCondTrue(t *testing.T) {
	vtest.Scope(t)

	c := If(func() bool { return true },
		Then(text("then")),
		ElseIf(func() bool { return true }, text("elseif")),
		Else(text("else")),
	)

	vtest.ExpectHTML(t, c.Render(), "<span>then</span>")
	if c.Selected() != 0 {
		t.Errorf("Selected() = %d, want 0", c.Selected())
	}
	if k, ok := c.SelectedKind(); !ok || k != KindThen {
		t.Errorf("SelectedKind() = %v, %v; want then, true", k, ok)
	}
}

func TestIf_FirstTrueElseIfWins(t *testing.T) {
	vtest.Scope(t)

	c := If(func() bool { return false },
		Then(text("then")),
		ElseIf(func() bool { return false }, text("a")),
		ElseIf(func() bool { return true }, text("b")),
		ElseIf(func() bool { return true }, text("c")),
		Else(text("else")),
	)

	vtest.ExpectHTML(t, c.Render(), "<span>b</span>")
	if c.Selected() != 2 {
		t.Errorf("Selected() = %d, want 2", c.Selected())
	}
}

func TestIf_ElseWhenNothingMatches(t *testing.T) {
	vtest.Scope(t)

	c := If(func() bool { return false },
		Then(text("then")),
		ElseIf(func() bool { return false }, text("a")),
		Else(text("else")),
	)

	vtest.ExpectHTML(t, c.Render(), "<span>else</span>")
	if k, _ := c.SelectedKind(); k != KindElse {
		t.Errorf("SelectedKind() = %v, want else", k)
	}
}

func TestIf_EmptyWithoutElse(t *testing.T) {
	vtest.Scope(t)

	c := If(func() bool { return false },
		Then(text("then")),
		ElseIf(func() bool { return false }, text("a")),
	)

	vtest.ExpectEmpty(t, c.Render())
	if c.Selected() != -1 {
		t.Errorf("Selected() = %d, want -1", c.Selected())
	}
	if _, ok := c.SelectedKind(); ok {
		t.Error("SelectedKind() ok = true, want false")
	}
}

func TestIf_NilCondIsFalse(t *testing.T) {
	vtest.Scope(t)

	c := If(nil, Then(text("then")), Else(text("else")))
	vtest.ExpectHTML(t, c.Render(), "<span>else</span>")
}

func TestIf_NilBranchesIgnored(t *testing.T) {
	vtest.Scope(t)

	var missing *ElseIfBranch
	c := If(func() bool { return false },
		Then(text("then")),
		nil,
		missing,
		Else(text("else")),
	)

	if n := len(c.Branches()); n != 2 {
		t.Fatalf("len(Branches()) = %d, want 2", n)
	}
	vtest.ExpectHTML(t, c.Render(), "<span>else</span>")
}

func TestIf_Idempotent(t *testing.T) {
	vtest.Scope(t)

	flag := reactive.NewSignal(true)
	c := If(flag.Get, Then(text("on")), Else(text("off")))

	first := vtest.RenderHTML(t, c.Render())
	second := vtest.RenderHTML(t, c.Render())
	if first != second {
		t.Errorf("renders differ: %q vs %q", first, second)
	}
	if c.Evaluations() != 1 {
		t.Errorf("Evaluations() = %d, want 1", c.Evaluations())
	}
}

func TestIf_ReevaluatesOnCondChange(t *testing.T) {
	vtest.Scope(t)

	loggedIn := reactive.NewSignal(false)
	c := If(loggedIn.Get, Then(text("dashboard")), Else(text("login")))

	vtest.ExpectHTML(t, c.Render(), "<span>login</span>")

	loggedIn.Set(true)
	vtest.ExpectHTML(t, c.Render(), "<span>dashboard</span>")

	loggedIn.Set(false)
	vtest.ExpectHTML(t, c.Render(), "<span>login</span>")

	if c.Evaluations() != 3 {
		t.Errorf("Evaluations() = %d, want 3", c.Evaluations())
	}
}

// A later ElseIf must trigger re-evaluation even when it was not selected
// the last time around.
func TestIf_DependsOnEveryElseIf(t *testing.T) {
	vtest.Scope(t)

	a := reactive.NewSignal(false)
	b := reactive.NewSignal(false)
	c := If(a.Get,
		Then(text("a")),
		ElseIf(b.Get, text("b")),
		Else(text("none")),
	)

	vtest.ExpectHTML(t, c.Render(), "<span>none</span>")

	b.Set(true)
	vtest.ExpectHTML(t, c.Render(), "<span>b</span>")
	if k, _ := c.SelectedKind(); k != KindElseIf {
		t.Errorf("SelectedKind() = %v, want elseif", k)
	}
}

func TestIf_TracksElseIfWhileThenSelected(t *testing.T) {
	vtest.Scope(t)

	a := reactive.NewSignal(true)
	b := reactive.NewSignal(false)
	x := reactive.NewSignal(false)
	c := If(a.Get,
		Then(text("a")),
		ElseIf(b.Get, text("b")),
		ElseIf(x.Get, text("x")),
	)

	before := c.Evaluations()
	x.Set(true)
	if c.Evaluations() != before+1 {
		t.Errorf("Evaluations() = %d, want %d", c.Evaluations(), before+1)
	}
	vtest.ExpectHTML(t, c.Render(), "<span>a</span>")

	a.Set(false)
	vtest.ExpectHTML(t, c.Render(), "<span>x</span>")

	b.Set(true)
	vtest.ExpectHTML(t, c.Render(), "<span>b</span>")
}

func TestIf_BatchedWritesEvaluateOnce(t *testing.T) {
	vtest.Scope(t)

	a := reactive.NewSignal(false)
	b := reactive.NewSignal(false)
	c := If(a.Get, Then(text("a")), ElseIf(b.Get, text("b")))

	before := c.Evaluations()
	reactive.Batch(func() {
		a.Set(true)
		b.Set(true)
	})
	if c.Evaluations() != before+1 {
		t.Errorf("Evaluations() = %d, want %d", c.Evaluations(), before+1)
	}
	vtest.ExpectHTML(t, c.Render(), "<span>a</span>")
}

func TestIf_ContentIsLazy(t *testing.T) {
	vtest.Scope(t)

	calls := map[string]int{}
	counted := func(name string) Content {
		return func() *vdom.VNode {
			calls[name]++
			return vdom.Text(name)
		}
	}

	flag := reactive.NewSignal(false)
	If(flag.Get, Then(counted("then")), Else(counted("else")))

	if calls["then"] != 0 || calls["else"] != 1 {
		t.Errorf("calls = %v, want only else once", calls)
	}
}

func TestIf_Nested(t *testing.T) {
	vtest.Scope(t)

	outer := reactive.NewSignal(true)
	inner := reactive.NewSignal(false)

	var nested *Conditional
	c := If(outer.Get,
		Then(func() *vdom.VNode {
			nested = If(inner.Get, Then(text("inner-on")), Else(text("inner-off")))
			return vdom.Div(vdom.Mount(nested))
		}),
		Else(text("outer-off")),
	)

	vtest.ExpectHTML(t, vdom.Mount(c), "<div><span>inner-off</span></div>")

	inner.Set(true)
	vtest.ExpectHTML(t, vdom.Mount(c), "<div><span>inner-on</span></div>")

	first := nested
	outer.Set(false)
	vtest.ExpectHTML(t, vdom.Mount(c), "<span>outer-off</span>")

	// The inner conditional belonged to the discarded branch.
	runs := first.Evaluations()
	inner.Set(false)
	if first.Evaluations() != runs {
		t.Error("disposed nested conditional re-evaluated")
	}
}

func TestIf_Dispose(t *testing.T) {
	vtest.Scope(t)

	flag := reactive.NewSignal(false)
	c := If(flag.Get, Then(text("on")), Else(text("off")))
	c.Dispose()

	flag.Set(true)
	if c.Evaluations() != 1 {
		t.Errorf("Evaluations() = %d after Dispose, want 1", c.Evaluations())
	}
	if flag.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d after Dispose, want 0", flag.Subscribers())
	}
}

func TestIf_DisposedWithScope(t *testing.T) {
	flag := reactive.NewSignal(false)
	var c *Conditional

	t.Run("scope", func(t *testing.T) {
		vtest.Scope(t)
		c = If(flag.Get, Then(text("on")))
	})

	flag.Set(true)
	if c.Evaluations() != 1 {
		t.Errorf("Evaluations() = %d after scope ended, want 1", c.Evaluations())
	}
}

func TestIf_PanicsOnInvalidBranches(t *testing.T) {
	vtest.Scope(t)

	err := vtest.ExpectPanicCode(t, "E104", func() {
		If(func() bool { return true },
			Then(text("a")),
			Else(text("b")),
			ElseIf(func() bool { return true }, text("c")),
		)
	})
	if err.Location == nil || !strings.HasSuffix(err.Location.File, "if_test.go") {
		t.Errorf("Location = %v, want a position in if_test.go", err.Location)
	}
}

func TestIf_ChecksDisabled(t *testing.T) {
	vtest.Scope(t)

	prev := SetBranchChecks(false)
	defer SetBranchChecks(prev)

	c := If(func() bool { return true })
	vtest.ExpectEmpty(t, c.Render())
}

func TestIf_UncheckedListsResolveInOrder(t *testing.T) {
	vtest.Scope(t)

	prev := SetBranchChecks(false)
	defer SetBranchChecks(prev)

	leading := If(func() bool { return false },
		ElseIf(func() bool { return true }, text("first-elseif")),
		Else(text("else")),
	)
	vtest.ExpectHTML(t, leading.Render(), "<span>first-elseif</span>")
	if leading.Selected() != 0 {
		t.Errorf("Selected() = %d, want 0", leading.Selected())
	}

	early := If(func() bool { return false },
		Then(text("then")),
		Else(text("else")),
		ElseIf(func() bool { return true }, text("late")),
	)
	vtest.ExpectHTML(t, early.Render(), "<span>else</span>")
}

func TestIf_UncheckedLeadingElseIfIsTracked(t *testing.T) {
	vtest.Scope(t)

	prev := SetBranchChecks(false)
	defer SetBranchChecks(prev)

	on := reactive.NewSignal(false)
	c := If(nil,
		ElseIf(on.Get, text("on")),
		Else(text("off")),
	)
	vtest.ExpectHTML(t, c.Render(), "<span>off</span>")

	on.Set(true)
	vtest.ExpectHTML(t, c.Render(), "<span>on</span>")
}
