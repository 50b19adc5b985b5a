package declarative

import (
	"github.com/vango-dev/declarative/pkg/reactive"
	"github.com/vango-dev/declarative/pkg/vdom"
)

// BranchKind identifies a branch variant.
type BranchKind uint8

const (
	// KindThen is the primary branch, selected by the If condition.
	KindThen BranchKind = iota + 1
	// KindElseIf is a branch with its own condition.
	KindElseIf
	// KindElse is the fallback branch.
	KindElse
)

// String returns the lower-case kind name used in logs and metric labels.
func (k BranchKind) String() string {
	switch k {
	case KindThen:
		return "then"
	case KindElseIf:
		return "elseif"
	case KindElse:
		return "else"
	default:
		return "unknown"
	}
}

// Branch is one arm of an If. The set of implementations is closed:
// *ThenBranch, *ElseIfBranch and *ElseBranch.
type Branch interface {
	Kind() BranchKind
	render() *vdom.VNode
}

// ThenBranch renders when the If condition is true.
type ThenBranch struct {
	content Content
}

// Then declares the primary branch.
func Then(content Content) *ThenBranch {
	return &ThenBranch{content: content}
}

// Kind returns KindThen.
func (b *ThenBranch) Kind() BranchKind { return KindThen }

func (b *ThenBranch) render() *vdom.VNode { return b.content.node() }

// ElseIfBranch renders when the If condition and every earlier ElseIf are
// false and its own condition is true.
type ElseIfBranch struct {
	cond    *reactive.Memo[bool]
	content Content
}

// ElseIf declares a conditional branch. cond is wrapped in a derived memo so
// that reading it registers the same dependencies as reading a signal.
func ElseIf(cond func() bool, content Content) *ElseIfBranch {
	return &ElseIfBranch{
		cond:    reactive.Derive(cond),
		content: content,
	}
}

// Kind returns KindElseIf.
func (b *ElseIfBranch) Kind() BranchKind { return KindElseIf }

func (b *ElseIfBranch) render() *vdom.VNode { return b.content.node() }

// Active reads the condition, subscribing the current listener.
func (b *ElseIfBranch) Active() bool {
	return b.cond.Get()
}

// ElseBranch renders when nothing before it matched.
type ElseBranch struct {
	content Content
}

// Else declares the fallback branch.
func Else(content Content) *ElseBranch {
	return &ElseBranch{content: content}
}

// Kind returns KindElse.
func (b *ElseBranch) Kind() BranchKind { return KindElse }

func (b *ElseBranch) render() *vdom.VNode { return b.content.node() }

// compact drops nil entries, including typed nil pointers.
func compact(branches []Branch) []Branch {
	out := make([]Branch, 0, len(branches))
	for _, b := range branches {
		switch v := b.(type) {
		case nil:
		case *ThenBranch:
			if v != nil {
				out = append(out, v)
			}
		case *ElseIfBranch:
			if v != nil {
				out = append(out, v)
			}
		case *ElseBranch:
			if v != nil {
				out = append(out, v)
			}
		}
	}
	return out
}
