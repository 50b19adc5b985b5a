package vdom

import "fmt"

// Text returns an escaped text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Textf returns a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Raw returns a node whose content is written without escaping.
func Raw(html string) *VNode {
	return &VNode{Kind: KindRaw, Text: html}
}

// Empty returns an empty fragment. It is a real node, unlike nil, so callers
// can tell "rendered nothing" apart from "not rendered".
func Empty() *VNode {
	return &VNode{Kind: KindFragment}
}

// Fragment groups children without a wrapper element. Accepted children are
// *VNode, []*VNode, string (text) and Component; nil values are skipped.
func Fragment(children ...any) *VNode {
	n := &VNode{Kind: KindFragment}
	appendChildren(n, children)
	return n
}

// Mount wraps c in a component node.
func Mount(c Component) *VNode {
	return &VNode{Kind: KindComponent, Comp: c}
}

func appendChildren(n *VNode, children []any) {
	for _, child := range children {
		switch v := child.(type) {
		case nil:
		case *VNode:
			if v != nil {
				n.Children = append(n.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					n.Children = append(n.Children, c)
				}
			}
		case string:
			n.Children = append(n.Children, Text(v))
		case Component:
			n.Children = append(n.Children, Mount(v))
		}
	}
}

// Key sets the reconciliation key.
func Key(key any) Attr {
	return Attr{Key: "key", Value: fmt.Sprint(key)}
}
