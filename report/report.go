package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"go.jacobcolvin.com/scopeprof/profiler"
)

// Row is one rendered scope: its position in the tree plus the derived
// report-time values.
type Row struct {
	// Name of the scope and its depth below the roots.
	Name  string `json:"name"  yaml:"name"`
	Depth int    `json:"depth" yaml:"depth"`

	// GlobalPct is the share of the whole measurement window, LocalPct the
	// share of the parent scope (of the window, for roots), and SelfPct the
	// share of this scope's time not already attributed to its children.
	GlobalPct float64 `json:"global_pct" yaml:"global_pct"`
	LocalPct  float64 `json:"local_pct"  yaml:"local_pct"`
	SelfPct   float64 `json:"self_pct"   yaml:"self_pct"`

	// Per-call durations in milliseconds.
	MeanMs float64 `json:"mean_ms" yaml:"mean_ms"`
	StdMs  float64 `json:"std_ms"  yaml:"std_ms"`
	LastMs float64 `json:"last_ms" yaml:"last_ms"`
	MinMs  float64 `json:"min_ms"  yaml:"min_ms"`
	MaxMs  float64 `json:"max_ms"  yaml:"max_ms"`

	// Hz is the completed-call rate over the measurement window. A call
	// still in flight at snapshot time is credited as one extra call.
	Hz float64 `json:"hz" yaml:"hz"`

	Calls uint64 `json:"calls" yaml:"calls"`
}

// Rows flattens snap into report rows: depth-first, pre-order, children in
// discovery order. Scopes with zero completed calls are skipped along with
// their subtrees.
func Rows(snap profiler.Snapshot) []Row {
	rows := make([]Row, 0, len(snap.Roots))

	totalSecs := snap.Total.Seconds()
	for _, root := range snap.Roots {
		rows = appendRows(rows, root, totalSecs, totalSecs, 0)
	}

	return rows
}

func appendRows(rows []Row, st profiler.ScopeStats, totalSecs, parentSecs float64, depth int) []Row {
	if st.Calls == 0 {
		return rows
	}

	sumSecs := st.Sum.Seconds()

	var childSecs float64
	for _, c := range st.Children {
		childSecs += c.Sum.Seconds()
	}

	row := Row{
		Name:      st.Name,
		Depth:     depth,
		GlobalPct: percent(sumSecs, totalSecs),
		LocalPct:  percent(sumSecs, parentSecs),
		SelfPct:   selfPercent(sumSecs, childSecs),
		StdMs:     st.Std * 1e3,
		LastMs:    millis(st.Last),
		MinMs:     millis(st.Min),
		MaxMs:     millis(st.Max),
		Calls:     st.Calls,
	}

	row.MeanMs = millis(st.Sum) / float64(st.Calls)

	if totalSecs > 0 {
		calls := float64(st.Calls)
		if st.Active {
			// Credit the in-flight call that has not completed yet.
			calls++
		}

		row.Hz = calls / totalSecs
	}

	rows = append(rows, row)
	for _, c := range st.Children {
		rows = appendRows(rows, c, totalSecs, sumSecs, depth+1)
	}

	return rows
}

// WriteProfiler renders p's current state as an indented text table. It is
// shorthand for [Write] over a fresh [profiler.Profiler.Snapshot].
//
// It lives here rather than as a method on [profiler.Profiler] so that the
// engine package stays free of rendering concerns.
func WriteProfiler(w io.Writer, p *profiler.Profiler) error {
	return Write(w, p.Snapshot())
}

// Write renders snap as an indented text table.
func Write(w io.Writer, snap profiler.Snapshot) error {
	rows := Rows(snap)

	nameWidth := len("scope")
	for _, r := range rows {
		if n := 2*r.Depth + len(r.Name); n > nameWidth {
			nameWidth = n
		}
	}

	_, err := fmt.Fprintf(w, "%-*s  %7s  %7s  %7s  %9s  %9s  %9s  %9s  %9s  %9s  %6s\n",
		nameWidth, "scope",
		"global", "local", "self",
		"mean", "std", "last", "min", "max",
		"freq", "calls")
	if err != nil {
		return fmt.Errorf("write report header: %w", err)
	}

	for _, r := range rows {
		name := strings.Repeat("  ", r.Depth) + r.Name

		_, err := fmt.Fprintf(w, "%-*s  %6.2f%%  %6.2f%%  %6.2f%%  %7.2fms  %7.2fms  %7.2fms  %7.2fms  %7.2fms  %7.2fHz  %6s\n",
			nameWidth, name,
			r.GlobalPct, r.LocalPct, r.SelfPct,
			r.MeanMs, r.StdMs, r.LastMs, r.MinMs, r.MaxMs,
			r.Hz, compactCount(r.Calls))
		if err != nil {
			return fmt.Errorf("write report row: %w", err)
		}
	}

	return nil
}

func percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}

	return part / whole * 100
}

// selfPercent is the share of a scope's time not attributed to its children.
// A scope whose own sum is (practically) zero has nothing to attribute, so
// its self share is defined as 100%.
func selfPercent(sumSecs, childSecs float64) float64 {
	const epsilon = 1e-12

	if sumSecs < epsilon {
		return 100
	}

	return max(0, sumSecs-childSecs) / sumSecs * 100
}

func millis(d time.Duration) float64 {
	return d.Seconds() * 1e3
}

// compactCount renders small counts exactly and large ones in SI notation
// ("1.2M") so the calls column stays narrow.
func compactCount(n uint64) string {
	const compactAbove = 10_000

	if n < compactAbove {
		return strconv.FormatUint(n, 10)
	}

	return strings.ReplaceAll(humanize.SIWithDigits(float64(n), 1, ""), " ", "")
}
