package declarative

import (
	"sync/atomic"

	"github.com/vango-dev/declarative/pkg/metrics"
	"github.com/vango-dev/declarative/pkg/reactive"
	"github.com/vango-dev/declarative/pkg/vdom"
)

// region is a reactively re-evaluated piece of the view tree. Each
// evaluation runs inside a fresh child owner, disposed before the next one,
// so components created by the previous output are released.
type region struct {
	construct string
	eval      func() *vdom.VNode

	parent *reactive.Owner
	out    *reactive.Signal[*vdom.VNode]
	effect *reactive.Effect

	evaluations atomic.Uint64
}

func newRegion(construct string, eval func() *vdom.VNode) *region {
	r := &region{
		construct: construct,
		eval:      eval,
		parent:    reactive.CurrentOwner(),
		// Every evaluation produces a new tree; always notify readers.
		out: reactive.NewSignal[*vdom.VNode](nil).WithEquals(func(a, b *vdom.VNode) bool { return false }),
	}
	r.effect = reactive.CreateEffect(r.run)
	return r
}

func (r *region) run() reactive.Cleanup {
	scope := reactive.NewOwner(r.parent)

	var node *vdom.VNode
	scope.Run(func() {
		node = r.eval()
	})
	if node == nil {
		node = vdom.Empty()
	}

	r.evaluations.Add(1)
	metrics.RecordEvaluation(r.construct)
	r.out.Set(node)

	return scope.Dispose
}

// Render returns the latest output. Inside an effect the read is tracked.
func (r *region) Render() *vdom.VNode {
	return r.out.Get()
}

// Evaluations reports how many times the region has evaluated.
func (r *region) Evaluations() uint64 {
	return r.evaluations.Load()
}

// Dispose stops re-evaluation and releases the last output's scope.
func (r *region) Dispose() {
	r.effect.Dispose()
}
