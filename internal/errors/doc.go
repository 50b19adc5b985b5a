// Package errors provides the coded, actionable errors used across the
// module.
//
// Every error carries a code (e.g. "E103") registered with a category,
// a short message, a longer explanation and a documentation link. Callers
// add the source location, a hint and a wrapped cause:
//
//	err := errors.New("E103").
//	    WithCaller(1).
//	    WithSuggestion("Move Else(...) to the end of the branch list")
//
//	fmt.Print(err.Format())
//	// ERROR E103: Else branch is not last
//	//
//	//   app/view.go:42
//	//   ...
//
// Structural misuse of the component tree (invalid branch lists, portals
// without a provider) is reported by panicking with an *Error; everything
// else is returned.
package errors
