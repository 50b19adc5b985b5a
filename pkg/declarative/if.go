package declarative

import (
	"sync/atomic"

	"github.com/vango-dev/declarative/pkg/metrics"
	"github.com/vango-dev/declarative/pkg/vdom"
)

// Conditional is the region produced by If. It implements vdom.Component so
// it can be mounted anywhere in a tree.
type Conditional struct {
	cond     func() bool
	branches []Branch
	region   *region

	selected atomic.Int64
}

// If renders exactly one of its branches, re-evaluating whenever cond or any
// ElseIf condition changes:
//
//	declarative.If(loggedIn.Get,
//	    declarative.Then(dashboard),
//	    declarative.ElseIf(guest.Get, welcome),
//	    declarative.Else(login),
//	)
//
// Then is chosen when cond is true; otherwise the first true ElseIf; otherwise
// Else; otherwise nothing. nil branches are ignored and a nil cond counts as
// false. When branch checks are enabled a malformed branch list panics with
// an *errors.Error (codes E101 to E105).
func If(cond func() bool, branches ...Branch) *Conditional {
	branches = compact(branches)

	if BranchChecks() {
		if err := validate(branches); err != nil {
			err = err.WithCaller(1)
			metrics.RecordValidationFailure(err.Code)
			logger().Error("invalid if branches",
				"code", err.Code,
				"location", err.Location,
				"branches", len(branches))
			panic(err)
		}
	}

	c := &Conditional{cond: cond, branches: branches}
	c.selected.Store(-2)
	c.region = newRegion("if", c.evaluate)
	return c
}

func (c *Conditional) evaluate() *vdom.VNode {
	idx := c.pick()

	prev := c.selected.Swap(int64(idx))
	if prev != int64(idx) {
		kind := "none"
		if idx >= 0 {
			kind = c.branches[idx].Kind().String()
		}
		metrics.RecordSelection(kind)
		if prev != -2 {
			logger().Debug("if branch changed", "from", prev, "to", idx, "kind", kind)
		}
	}

	if idx < 0 {
		return vdom.Empty()
	}
	return c.branches[idx].render()
}

// pick returns the index of the branch to render, or -1 for none. Branches
// are matched in list order, so an unchecked list resolves to its first
// matching branch.
func (c *Conditional) pick() int {
	// Every ElseIf is read on every evaluation, so the region depends on all
	// of them regardless of which one wins.
	active := make([]bool, len(c.branches))
	for i, b := range c.branches {
		if e, ok := b.(*ElseIfBranch); ok {
			active[i] = e.Active()
		}
	}
	primary := c.cond != nil && c.cond()

	for i, b := range c.branches {
		switch b.Kind() {
		case KindThen:
			if primary {
				return i
			}
		case KindElseIf:
			if active[i] {
				return i
			}
		case KindElse:
			return i
		}
	}
	return -1
}

// Render returns the selected branch's output.
func (c *Conditional) Render() *vdom.VNode {
	return c.region.Render()
}

// Selected returns the index of the rendered branch, or -1 when nothing
// renders.
func (c *Conditional) Selected() int {
	idx := c.selected.Load()
	if idx < 0 {
		return -1
	}
	return int(idx)
}

// SelectedKind returns the kind of the rendered branch. ok is false when
// nothing renders.
func (c *Conditional) SelectedKind() (kind BranchKind, ok bool) {
	idx := c.Selected()
	if idx < 0 {
		return 0, false
	}
	return c.branches[idx].Kind(), true
}

// Branches returns the branch list after nil entries were dropped.
func (c *Conditional) Branches() []Branch {
	out := make([]Branch, len(c.branches))
	copy(out, c.branches)
	return out
}

// Evaluations reports how many times the conditional has been evaluated.
func (c *Conditional) Evaluations() uint64 {
	return c.region.Evaluations()
}

// Dispose stops tracking and releases the rendered branch.
func (c *Conditional) Dispose() {
	c.region.Dispose()
}

var _ vdom.Component = (*Conditional)(nil)

// MustValidate panics with the validation error, if any. It runs regardless
// of SetBranchChecks.
func MustValidate(branches ...Branch) {
	if err := validate(compact(branches)); err != nil {
		panic(err.WithCaller(1))
	}
}
