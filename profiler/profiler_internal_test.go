package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfiler_LeaveWithNoActiveScope(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	p := New(WithLogger(logger))
	p.Do("settled", func() {})

	// A leave with an empty cursor is a profiler defect, not an
	// application error: it must complain and change nothing.
	p.leave(time.Millisecond)

	assert.Contains(t, buf.String(), "no active scope")
	assert.Nil(t, p.current)

	snap := p.Snapshot()
	require.Len(t, snap.Roots, 1)
	assert.Equal(t, "settled", snap.Roots[0].Name)
	assert.Equal(t, uint64(1), snap.Roots[0].Calls)
}
