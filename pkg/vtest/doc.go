// Package vtest provides testing helpers for declarative views.
//
// Scope gives each test its own root owner so effects, memos and portal
// providers created by the test are disposed when it ends:
//
//	func TestBanner(t *testing.T) {
//	    vtest.Scope(t)
//	    show := reactive.NewSignal(false)
//	    c := declarative.If(show.Get, declarative.Then(banner))
//	    vtest.ExpectEmpty(t, c.Render())
//
//	    show.Set(true)
//	    vtest.ExpectContains(t, c.Render(), "Sale")
//	}
//
// ExpectPanicCode asserts on structural misuse:
//
//	vtest.ExpectPanicCode(t, "E104", func() {
//	    declarative.If(cond, declarative.Then(a), declarative.Else(b), declarative.ElseIf(c, d))
//	})
package vtest
