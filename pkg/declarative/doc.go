// Package declarative adds two control-flow components to the reactive view
// runtime: a multi-branch conditional and portals.
//
// # If
//
// If renders exactly one of its branches and re-renders when any branch
// condition changes:
//
//	declarative.If(loggedIn.Get,
//	    declarative.Then(func() *vdom.VNode { return vdom.P("Welcome back") }),
//	    declarative.ElseIf(guest.Get, declarative.Static(vdom.P("Hello, guest"))),
//	    declarative.Else(declarative.Static(vdom.P("Please sign in"))),
//	)
//
// Then must come first and appear once. ElseIf branches follow in priority
// order. Else is optional and must be last. Branch lists are checked when
// If is called; violations panic with an *errors.Error (codes E101-E105).
// Building with -tags declarative_release compiles the checks out.
//
// Every evaluation reads every ElseIf condition, whether or not an earlier
// branch is selected, so a change to any condition schedules a re-render.
// Only the selected branch's content runs.
//
// # Portals
//
// A portal renders content somewhere other than where it is declared. Both
// ends name the same identifier, usually a zero-size struct type:
//
//	type toolbar struct{}
//
//	declarative.PortalProvider(func() *vdom.VNode {
//	    return vdom.Div(
//	        vdom.Header(declarative.PortalOutput(toolbar{})),
//	        declarative.PortalInput(toolbar{}, declarative.Static(vdom.Button("Save"))),
//	    )
//	})
//
// Inputs and outputs may be declared in any order. Using either outside a
// PortalProvider panics with E110, and an identifier whose dynamic value is
// not comparable panics with E111.
package declarative
