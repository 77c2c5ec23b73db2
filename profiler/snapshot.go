package profiler

import "time"

// ScopeStats is the read-only view of one scope's accumulated statistics,
// produced by [Profiler.Snapshot].
type ScopeStats struct {
	Name string

	// Calls counts completed enter/leave pairs. A scope that has been
	// entered but never completed has Calls == 0.
	Calls uint64

	// Active reports whether the scope was mid-measurement at snapshot
	// time. An in-flight call is not yet included in the other fields.
	Active bool

	Sum  time.Duration
	Min  time.Duration
	Max  time.Duration
	Last time.Duration

	// Mean and Std are the streaming mean and population standard
	// deviation of the per-call durations, in seconds.
	Mean float64
	Std  float64

	// Children in discovery order.
	Children []ScopeStats
}

// Snapshot is a point-in-time copy of a [Profiler]'s forest.
type Snapshot struct {
	// Total is the wall-clock time elapsed since the measurement window
	// started (profiler creation or the last [Profiler.Reset]). It is the
	// denominator for frequency and global percentages: time spent outside
	// all tracked scopes still counts toward the window.
	Total time.Duration

	// Roots in discovery order.
	Roots []ScopeStats
}
