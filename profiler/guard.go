package profiler

import "time"

// Guard is the token returned by [Profiler.Enter]. It owns the start
// timestamp of one instrumented region; calling [Guard.End] measures the
// elapsed time and completes the region.
//
// A Guard belongs to exactly one region: end it exactly once, on every exit
// path. The idiomatic form is
//
//	defer p.Enter("physics").End()
//
// which guarantees exactly-once completion on normal return, early return,
// and panic unwinding alike. Guards must not be shared between goroutines.
type Guard struct {
	profiler *Profiler
	start    time.Time
	ended    bool
}

// End stops timing the region this guard was issued for and feeds the
// elapsed duration back to the owning [Profiler]. Ending the same guard a
// second time is logged and ignored, and a zero-value guard (one not issued
// by [Profiler.Enter]) is a no-op: a stray guard must never take the host
// program down.
func (g *Guard) End() {
	if g.profiler == nil {
		return
	}

	if g.ended {
		g.profiler.logger.Error("profiler: guard ended more than once")

		return
	}

	g.ended = true
	g.profiler.leave(g.profiler.now().Sub(g.start))
}
