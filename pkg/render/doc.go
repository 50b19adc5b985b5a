// Package render writes vdom trees as HTML.
//
//	r := render.New(render.Config{Pretty: true})
//	html, err := r.RenderToString(tree)
//
// Text and attribute values are escaped; Raw nodes are written verbatim.
// Attributes are emitted in sorted order. A true boolean attribute renders
// as a bare name and a false one is omitted.
package render
