package reactive

// Batch groups writes so that dependent effects run once, after fn returns.
// Batches nest; effects run when the outermost batch completes.
//
//	reactive.Batch(func() {
//	    loggedIn.Set(true)
//	    admin.Set(true)
//	})
func Batch(fn func()) {
	st := state()
	st.depth++
	defer func() {
		st.depth--
		if st.depth == 0 {
			flush(st)
		}
	}()
	fn()
}

// enqueue schedules e to run once the current notification pass ends.
func enqueue(e *Effect) {
	st := state()
	st.queue = append(st.queue, e)
	if st.depth == 0 {
		flush(st)
	}
}

// flush runs queued effects until the queue is empty. Effects queued while
// flushing are picked up by the same loop.
func flush(st *trackingState) {
	if st.flushing {
		return
	}
	st.flushing = true
	defer func() { st.flushing = false }()

	for len(st.queue) > 0 {
		e := st.queue[0]
		st.queue[0] = nil
		st.queue = st.queue[1:]
		if e.pending.Load() {
			e.run()
		}
	}
	st.queue = nil
}
