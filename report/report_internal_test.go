package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompactCount(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input    uint64
		expected string
	}{
		"zero":            {input: 0, expected: "0"},
		"small":           {input: 42, expected: "42"},
		"below threshold": {input: 9_999, expected: "9999"},
		"thousands":       {input: 10_000, expected: "10k"},
		"rounded":         {input: 12_345, expected: "12.3k"},
		"millions":        {input: 1_234_567, expected: "1.2M"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, compactCount(tc.input))
		})
	}
}
