package vdom

import "strings"

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// IsVoidElement reports whether tag never has children or a closing tag.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El builds an element. Arguments may be Attr, []Attr, or anything Fragment
// accepts as a child.
func El(tag string, args ...any) *VNode {
	n := &VNode{Kind: KindElement, Tag: tag}
	var children []any
	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			setAttr(n, v)
		case []Attr:
			for _, a := range v {
				setAttr(n, a)
			}
		default:
			children = append(children, arg)
		}
	}
	if !IsVoidElement(tag) {
		appendChildren(n, children)
	}
	return n
}

func setAttr(n *VNode, a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			n.Key = s
		}
		return
	}
	if n.Props == nil {
		n.Props = make(Props)
	}
	n.Props[a.Key] = a.Value
}

// A sets an arbitrary attribute.
func A(key string, value any) Attr { return Attr{Key: key, Value: value} }

// ID sets the id attribute.
func ID(id string) Attr { return A("id", id) }

// Class joins classes into the class attribute.
func Class(classes ...string) Attr { return A("class", strings.Join(classes, " ")) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return A("data-"+key, value) }

// Href sets the href attribute.
func Href(url string) Attr { return A("href", url) }

// Role sets the role attribute.
func Role(role string) Attr { return A("role", role) }

func Html(args ...any) *VNode    { return El("html", args...) }
func Head(args ...any) *VNode    { return El("head", args...) }
func Body(args ...any) *VNode    { return El("body", args...) }
func Title(args ...any) *VNode   { return El("title", args...) }
func Meta(args ...any) *VNode    { return El("meta", args...) }
func Script(args ...any) *VNode  { return El("script", args...) }
func Div(args ...any) *VNode     { return El("div", args...) }
func Span(args ...any) *VNode    { return El("span", args...) }
func P(args ...any) *VNode       { return El("p", args...) }
func H1(args ...any) *VNode      { return El("h1", args...) }
func H2(args ...any) *VNode      { return El("h2", args...) }
func Header(args ...any) *VNode  { return El("header", args...) }
func Main(args ...any) *VNode    { return El("main", args...) }
func Footer(args ...any) *VNode  { return El("footer", args...) }
func Section(args ...any) *VNode { return El("section", args...) }
func Nav(args ...any) *VNode     { return El("nav", args...) }
func Ul(args ...any) *VNode      { return El("ul", args...) }
func Li(args ...any) *VNode      { return El("li", args...) }
func Strong(args ...any) *VNode  { return El("strong", args...) }
func Button(args ...any) *VNode  { return El("button", args...) }
func Br() *VNode                 { return El("br") }
