package profiler

import (
	"fmt"
	"math"
	"time"
)

// scope is one node of the profiling tree: a named call site plus the
// statistics accumulated over its completed calls.
//
// Names compare by value and are unique among the children of one parent, so
// each (parent path, name) pair maps to exactly one node. Children keep
// discovery order.
type scope struct {
	name     string
	parent   *scope
	children []*scope

	// active is true between a matching enter and its leave.
	active bool

	calls uint64
	sum   time.Duration
	min   time.Duration
	max   time.Duration
	last  time.Duration

	// Welford running statistics, in seconds.
	mean float64
	m2   float64
}

// child returns the child named name, or nil if this node has none.
func (s *scope) child(name string) *scope {
	for _, c := range s.children {
		if c.name == name {
			return c
		}
	}

	return nil
}

// activate marks the scope as being timed. Entering a scope that is already
// active would misattribute every subsequent measurement, so it fails hard
// rather than continue with a corrupt tree.
func (s *scope) activate() {
	if s.active {
		panic(fmt.Sprintf("profiler: scope %q entered while already active", s.name))
	}

	s.active = true
}

// record folds one completed call of duration d into the running statistics
// and returns the scope to the idle state.
func (s *scope) record(d time.Duration) {
	s.active = false
	s.calls++

	s.sum = saturatingAdd(s.sum, d)
	s.last = d

	if s.calls == 1 {
		s.min, s.max = d, d
	} else {
		s.min = min(s.min, d)
		s.max = max(s.max, d)
	}

	// Welford update: numerically stable streaming mean/variance in O(1)
	// space, no matter how many calls accumulate.
	secs := d.Seconds()
	delta := secs - s.mean
	s.mean += delta / float64(s.calls)
	s.m2 += delta * (secs - s.mean)
}

// stats snapshots this scope and its subtree.
func (s *scope) stats() ScopeStats {
	st := ScopeStats{
		Name:   s.name,
		Calls:  s.calls,
		Active: s.active,
		Sum:    s.sum,
		Min:    s.min,
		Max:    s.max,
		Last:   s.last,
		Mean:   s.mean,
	}

	if s.calls > 0 {
		st.Std = math.Sqrt(s.m2 / float64(s.calls))
	}

	for _, c := range s.children {
		st.Children = append(st.Children, c.stats())
	}

	return st
}

// saturatingAdd adds two non-negative durations, clamping to the maximum
// representable duration instead of wrapping on overflow.
func saturatingAdd(a, b time.Duration) time.Duration {
	if sum := a + b; sum >= a {
		return sum
	}

	return time.Duration(math.MaxInt64)
}
