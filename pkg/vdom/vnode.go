package vdom

// Kind discriminates VNode variants.
type Kind uint8

const (
	KindElement   Kind = iota // <div>, <p>, ...
	KindText                  // escaped text
	KindFragment              // children without a wrapper
	KindComponent             // rendered lazily through Comp
	KindRaw                   // unescaped HTML
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is a node of the view tree.
type VNode struct {
	Kind     Kind
	Tag      string    // element tag name
	Props    Props     // element attributes
	Children []*VNode  // element and fragment children
	Key      string    // reconciliation key
	Text     string    // KindText and KindRaw content
	Comp     Component // KindComponent
}

// Props holds element attributes.
type Props map[string]any

// Attr is a single attribute passed to an element constructor.
type Attr struct {
	Key   string
	Value any
}

// Component is anything that produces a VNode when rendered.
type Component interface {
	Render() *VNode
}

type funcComponent struct {
	render func() *VNode
}

func (f funcComponent) Render() *VNode { return f.render() }

// Func adapts a render function to Component.
func Func(render func() *VNode) Component {
	return funcComponent{render: render}
}

// IsEmpty reports whether n renders nothing: nil, or a fragment whose
// children are all empty.
func IsEmpty(n *VNode) bool {
	if n == nil {
		return true
	}
	if n.Kind != KindFragment {
		return false
	}
	for _, c := range n.Children {
		if !IsEmpty(c) {
			return false
		}
	}
	return true
}
