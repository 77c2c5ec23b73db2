package profiler

import (
	"log/slog"
	"time"
)

// Profiler owns a forest of [scope] trees and tracks the scope currently
// being timed (the tip of the instrumented call stack).
//
// Create instances with [New]. A Profiler must be confined to a single
// goroutine; see the package documentation.
type Profiler struct {
	roots   []*scope
	current *scope

	// windowStart anchors the measurement window. It is the denominator
	// for frequency and global percentage math and restarts on [Profiler.Reset].
	windowStart time.Time

	now    func() time.Time
	logger *slog.Logger
}

// Option configures a [Profiler].
type Option func(*Profiler)

// WithLogger sets the logger used to report profiler misuse anomalies.
// The default is [slog.Default].
func WithLogger(logger *slog.Logger) Option {
	return func(p *Profiler) {
		p.logger = logger
	}
}

// WithNowFunc replaces the clock used for timestamps. Intended for tests
// that need deterministic durations or a frozen report window.
func WithNowFunc(now func() time.Time) Option {
	return func(p *Profiler) {
		p.now = now
	}
}

// New creates an empty [Profiler] whose measurement window starts now.
func New(opts ...Option) *Profiler {
	p := &Profiler{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.windowStart = p.now()

	return p
}

// Enter begins timing the named region and returns a [Guard] whose
// [Guard.End] stops it. The region nests under the currently active scope,
// or becomes a root when none is active. Entering the same name twice at the
// same tree position reuses the existing node, so statistics accumulate
// across repeated calls.
//
// Enter panics if the resolved scope is already active, which can only
// happen through guard misuse.
func (p *Profiler) Enter(name string) *Guard {
	s := p.resolve(name)
	s.activate()
	p.current = s

	return &Guard{profiler: p, start: p.now()}
}

// Do times fn as a region named name. It is shorthand for
// defer p.Enter(name).End() wrapped around the call.
func (p *Profiler) Do(name string, fn func()) {
	defer p.Enter(name).End()
	fn()
}

// resolve finds or creates the scope for name at the current tree position:
// among the cursor's children when a scope is active, among the roots
// otherwise.
func (p *Profiler) resolve(name string) *scope {
	if p.current != nil {
		if c := p.current.child(name); c != nil {
			return c
		}

		c := &scope{name: name, parent: p.current}
		p.current.children = append(p.current.children, c)

		return c
	}

	for _, r := range p.roots {
		if r.name == name {
			return r
		}
	}

	r := &scope{name: name}
	p.roots = append(p.roots, r)

	return r
}

// leave completes the current scope with the measured duration and moves the
// cursor back to its parent. A leave with no active scope is a profiler
// misuse, not an application error: it is logged and ignored so that a
// stray guard can never destabilize the host program.
func (p *Profiler) leave(d time.Duration) {
	if p.current == nil {
		p.logger.Error("profiler: leave called with no active scope")

		return
	}

	p.current.record(d)
	p.current = p.current.parent
}

// Reset discards all accumulated statistics and restarts the measurement
// window.
//
// It is safe to call while scopes are active: the cursor is left untouched,
// so guards that are still open keep unwinding through the now-detached
// subtree. Their updates land on nodes no report can reach, which is dead
// work rather than an error, and the cursor returns to empty once that
// pre-reset stack fully unwinds.
func (p *Profiler) Reset() {
	p.roots = nil
	p.windowStart = p.now()
}

// Snapshot captures the current forest and the elapsed measurement window.
// It reads accumulated state plus the current time and mutates nothing, so
// two snapshots under a frozen clock are identical.
func (p *Profiler) Snapshot() Snapshot {
	snap := Snapshot{Total: p.now().Sub(p.windowStart)}
	for _, r := range p.roots {
		snap.Roots = append(snap.Roots, r.stats())
	}

	return snap
}
