// Package profiler measures how long named regions of code take, organized
// as a tree that mirrors the call structure.
//
// It is an always-on, coarse-grained profiler intended for code that runs the
// same regions over and over, such as a game or simulation frame loop. Each
// named region becomes a [Scope] node; entering a region while another is
// active nests it under that region. Statistics (call count, total, min, max,
// last, and a streaming mean/deviation via Welford's algorithm) accumulate
// across calls, so hot spots emerge after a few frames without any external
// tooling.
//
// Typical usage creates one [Profiler] per goroutine and brackets regions
// with [Profiler.Enter] and [Guard.End]:
//
//	p := profiler.New()
//
//	func frame() {
//	    defer p.Enter("frame").End()
//
//	    physics()
//	    render()
//	}
//
//	func render() {
//	    defer p.Enter("render").End()
//	    // ...
//	}
//
// After the loop, render the accumulated tree with
// [go.jacobcolvin.com/scopeprof/report.Write]:
//
//	report.Write(os.Stdout, p.Snapshot())
//
// Example output:
//
//	frame: 100.00%, 10.40ms/call @ 96.17Hz
//	  physics: 3.04%, 3.16ms/call @ 9.62Hz
//	  render: 96.84%, 10.07ms/call @ 96.17Hz
//
// A [Profiler] is deliberately not safe for concurrent use: enter/leave pairs
// on one goroutine must nest like a stack, and interleaving from a second
// goroutine would corrupt that stack. Give each goroutine its own instance.
package profiler
