// Package reactive is the fine-grained reactive runtime the declarative
// components run on.
//
// # Primitives
//
// Signal holds a value. Memo derives a value from other sources and caches
// it. Effect runs a function and re-runs it whenever anything it read
// changes. Reads made through Get inside a memo computation or an effect run
// are recorded as dependencies; Peek and Untracked read without recording.
//
//	count := reactive.NewSignal(0)
//	double := reactive.NewMemo(func() int { return count.Get() * 2 })
//	reactive.CreateEffect(func() reactive.Cleanup {
//	    fmt.Println(double.Get())
//	    return nil
//	})
//	count.Set(2) // prints 4
//
// # Scheduling
//
// Everything is synchronous. A write notifies subscribers, memos invalidate
// transitively, and the effects reached run before Set returns. Batch defers
// effect runs until the batch ends. Tracking state is kept per goroutine;
// signals shared between goroutines must be written from one of them.
//
// # Ownership and context
//
// Owner scopes lifetimes: disposing an owner disposes everything created
// under it. Context threads typed values down the owner tree.
package reactive
