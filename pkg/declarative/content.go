package declarative

import "github.com/vango-dev/declarative/pkg/vdom"

// Content produces the fragment a branch or portal renders. It is called
// lazily, only when its branch is selected or its portal output evaluates.
type Content func() *vdom.VNode

// Static wraps already-built children. The children are shared between
// evaluations; anything that must be rebuilt each time, such as a nested If,
// belongs in a Content function instead.
func Static(children ...any) Content {
	return func() *vdom.VNode {
		return vdom.Fragment(children...)
	}
}

// FromComponent renders c each time the content is produced.
func FromComponent(c vdom.Component) Content {
	return func() *vdom.VNode {
		return c.Render()
	}
}

// node invokes the producer, mapping nil results to an empty fragment.
func (c Content) node() *vdom.VNode {
	if c == nil {
		return vdom.Empty()
	}
	if n := c(); n != nil {
		return n
	}
	return vdom.Empty()
}
