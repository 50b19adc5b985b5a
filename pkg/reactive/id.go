package reactive

import "sync/atomic"

// idCounter hands out identifiers for signals, memos, effects and owners.
var idCounter atomic.Uint64

// nextID returns a process-unique, monotonically increasing identifier.
func nextID() uint64 {
	return idCounter.Add(1)
}
