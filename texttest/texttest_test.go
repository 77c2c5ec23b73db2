package texttest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/scopeprof/texttest"
)

func TestLines(t *testing.T) {
	t.Parallel()

	assert.Empty(t, texttest.Lines())
	assert.Equal(t, "one\n", texttest.Lines("one"))
	assert.Equal(t, "one\ntwo\n", texttest.Lines("one", "two"))
}
