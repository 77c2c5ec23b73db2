package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/scopeprof/profiler"
	"go.jacobcolvin.com/scopeprof/report"
	"go.jacobcolvin.com/scopeprof/texttest"
)

func pflagSet(t *testing.T) *pflag.FlagSet {
	t.Helper()

	return pflag.NewFlagSet(t.Name(), pflag.ContinueOnError)
}

// snapshotFixture is one second of window time with a "frame" root (2 calls,
// 500ms total) and a nested "render" child (2 calls, 400ms total).
func snapshotFixture() profiler.Snapshot {
	return profiler.Snapshot{
		Total: time.Second,
		Roots: []profiler.ScopeStats{
			{
				Name:  "frame",
				Calls: 2,
				Sum:   500 * time.Millisecond,
				Min:   200 * time.Millisecond,
				Max:   300 * time.Millisecond,
				Last:  300 * time.Millisecond,
				Mean:  0.25,
				Std:   0.05,
				Children: []profiler.ScopeStats{
					{
						Name:  "render",
						Calls: 2,
						Sum:   400 * time.Millisecond,
						Min:   150 * time.Millisecond,
						Max:   250 * time.Millisecond,
						Last:  250 * time.Millisecond,
						Mean:  0.2,
						Std:   0.05,
					},
				},
			},
		},
	}
}

func TestRows(t *testing.T) {
	t.Parallel()

	rows := report.Rows(snapshotFixture())
	require.Len(t, rows, 2)

	frame, render := rows[0], rows[1]

	assert.Equal(t, "frame", frame.Name)
	assert.Equal(t, 0, frame.Depth)
	assert.InDelta(t, 50.0, frame.GlobalPct, 1e-9)
	assert.InDelta(t, 50.0, frame.LocalPct, 1e-9)
	assert.InDelta(t, 20.0, frame.SelfPct, 1e-9) // 100ms of 500ms unattributed.
	assert.InDelta(t, 250.0, frame.MeanMs, 1e-9)
	assert.InDelta(t, 50.0, frame.StdMs, 1e-9)
	assert.InDelta(t, 300.0, frame.LastMs, 1e-9)
	assert.InDelta(t, 200.0, frame.MinMs, 1e-9)
	assert.InDelta(t, 300.0, frame.MaxMs, 1e-9)
	assert.InDelta(t, 2.0, frame.Hz, 1e-9)
	assert.Equal(t, uint64(2), frame.Calls)

	assert.Equal(t, "render", render.Name)
	assert.Equal(t, 1, render.Depth)
	assert.InDelta(t, 40.0, render.GlobalPct, 1e-9)
	assert.InDelta(t, 80.0, render.LocalPct, 1e-9) // 400ms of the parent's 500ms.
	assert.InDelta(t, 100.0, render.SelfPct, 1e-9)
	assert.InDelta(t, 200.0, render.MeanMs, 1e-9)
	assert.InDelta(t, 2.0, render.Hz, 1e-9)
}

func TestRows_OmitsZeroCallScopes(t *testing.T) {
	t.Parallel()

	snap := profiler.Snapshot{
		Total: time.Second,
		Roots: []profiler.ScopeStats{
			{
				Name:   "pending",
				Calls:  0,
				Active: true,
				Children: []profiler.ScopeStats{
					{Name: "done", Calls: 3, Sum: 30 * time.Millisecond},
				},
			},
			{Name: "settled", Calls: 1, Sum: 10 * time.Millisecond},
		},
	}

	rows := report.Rows(snap)

	// The never-completed root disappears along with its subtree: its
	// percentage denominators are undefined.
	require.Len(t, rows, 1)
	assert.Equal(t, "settled", rows[0].Name)
}

func TestRows_SelfPercentOfZeroSum(t *testing.T) {
	t.Parallel()

	snap := profiler.Snapshot{
		Total: time.Second,
		Roots: []profiler.ScopeStats{
			{Name: "instant", Calls: 5, Sum: 0},
		},
	}

	rows := report.Rows(snap)
	require.Len(t, rows, 1)
	assert.InDelta(t, 100.0, rows[0].SelfPct, 1e-9)
	assert.Zero(t, rows[0].GlobalPct)
}

func TestRows_ActiveCallCreditsFrequency(t *testing.T) {
	t.Parallel()

	snap := profiler.Snapshot{
		Total: 2 * time.Second,
		Roots: []profiler.ScopeStats{
			{Name: "busy", Calls: 3, Active: true, Sum: time.Second},
		},
	}

	rows := report.Rows(snap)
	require.Len(t, rows, 1)

	// Three completed calls plus the in-flight one, over two seconds.
	assert.InDelta(t, 2.0, rows[0].Hz, 1e-9)
}

func TestWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, snapshotFixture()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t,
		[]string{"scope", "global", "local", "self", "mean", "std", "last", "min", "max", "freq", "calls"},
		strings.Fields(lines[0]))

	assert.Equal(t,
		[]string{"frame", "50.00%", "50.00%", "20.00%", "250.00ms", "50.00ms", "300.00ms", "200.00ms", "300.00ms", "2.00Hz", "2"},
		strings.Fields(lines[1]))

	assert.Equal(t,
		[]string{"render", "40.00%", "80.00%", "100.00%", "200.00ms", "50.00ms", "250.00ms", "150.00ms", "250.00ms", "2.00Hz", "2"},
		strings.Fields(lines[2]))

	// Children indent under their parent.
	assert.True(t, strings.HasPrefix(lines[2], "  render"))
}

func TestWrite_EmptySnapshot(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, profiler.Snapshot{Total: time.Second}))

	// Header only, no rows.
	want := texttest.Lines(
		"scope   global    local     self       mean        std       last        min        max       freq   calls",
	)
	assert.Equal(t, want, buf.String())
}

func TestWrite_Idempotent(t *testing.T) {
	t.Parallel()

	frozen := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := frozen

	p := profiler.New(profiler.WithNowFunc(func() time.Time { return clock }))

	for range 3 {
		g := p.Enter("frame")
		clock = clock.Add(10 * time.Millisecond)
		g.End()
	}

	// Freeze the clock: two renders with no intervening activity must be
	// byte-identical.
	var first, second bytes.Buffer
	require.NoError(t, report.Write(&first, p.Snapshot()))
	require.NoError(t, report.Write(&second, p.Snapshot()))

	assert.Equal(t, first.String(), second.String())
	assert.NotEmpty(t, first.String())
}

func TestWriteProfiler(t *testing.T) {
	t.Parallel()

	frozen := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := frozen

	p := profiler.New(profiler.WithNowFunc(func() time.Time { return clock }))

	g := p.Enter("frame")
	clock = clock.Add(10 * time.Millisecond)
	g.End()

	// The convenience must render exactly what Write over a snapshot does.
	var direct, convenience bytes.Buffer
	require.NoError(t, report.Write(&direct, p.Snapshot()))
	require.NoError(t, report.WriteProfiler(&convenience, p))

	assert.Equal(t, direct.String(), convenience.String())
	assert.Contains(t, convenience.String(), "frame")
}

func TestEncode_JSON(t *testing.T) {
	t.Parallel()

	snap := snapshotFixture()

	var buf bytes.Buffer
	require.NoError(t, report.Encode(&buf, snap, report.FormatJSON))

	var rows []report.Row
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))

	assert.Equal(t, report.Rows(snap), rows)
}

func TestEncode_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Encode(&buf, snapshotFixture(), report.FormatYAML))

	out := buf.String()
	assert.Contains(t, out, "name: frame")
	assert.Contains(t, out, "name: render")
	assert.Contains(t, out, "calls: 2")
}

func TestGetFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expected    report.Format
		expectError bool
	}{
		"text": {
			input:    "text",
			expected: report.FormatText,
		},
		"yaml": {
			input:    "yaml",
			expected: report.FormatYAML,
		},
		"json": {
			input:    "json",
			expected: report.FormatJSON,
		},
		"case insensitive": {
			input:    "JSON",
			expected: report.FormatJSON,
		},
		"unknown": {
			input:       "xml",
			expected:    "",
			expectError: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := report.GetFormat(tc.input)

			if tc.expectError {
				require.ErrorIs(t, err, report.ErrUnknownFormat)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestConfig_RegisterFlags(t *testing.T) {
	t.Parallel()

	cfg := report.NewConfig()

	flags := pflagSet(t)
	cfg.RegisterFlags(flags)

	require.NoError(t, flags.Parse([]string{
		"--report-format=yaml",
		"--report-output=out.yaml",
	}))

	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "out.yaml", cfg.Output)
}
