package reactive

// Listener is anything that re-runs or invalidates when a dependency changes.
// Memos and effects implement it.
type Listener interface {
	// MarkDirty notifies the listener that one of its sources changed.
	// Memos invalidate their cached value; effects queue a re-run.
	MarkDirty()

	// ID identifies the listener for subscription de-duplication.
	ID() uint64
}

// sourceTracker is implemented by listeners that remember what they read so
// they can unsubscribe before re-running.
type sourceTracker interface {
	Listener
	addSource(source *signalBase)
}

// Cleanup is returned by effect functions and runs before the next run and on
// disposal.
type Cleanup func()
