// Package vdom is the view tree the declarative components produce.
//
// A VNode is an element, text, fragment, raw HTML, or a component rendered
// lazily through its Render method. Element constructors take attributes
// and children in any order:
//
//	Div(Class("card"),
//	    H1(Text("Title")),
//	    "plain text child",
//	)
//
// Empty returns a fragment with no children; IsEmpty recognises it and nil.
package vdom
