package flags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/logtree/pkg/level"
)

func TestStringSlice(t *testing.T) {
	t.Parallel()

	var s StringSlice
	require.NoError(t, s.Set("a"))
	require.NoError(t, s.Set("b"))
	assert.Equal(t, "a,b", s.String())
	assert.Equal(t, "stringSlice", s.Type())
}

func TestLevel(t *testing.T) {
	t.Parallel()

	l := Level(level.Info)
	assert.Equal(t, "info", l.String())

	require.NoError(t, l.Set("WARN"))
	assert.Equal(t, level.Warning, l.Get())

	err := l.Set("loud")
	assert.ErrorIs(t, err, level.ErrInvalidLevel)
	assert.Equal(t, level.Warning, l.Get(), "failed Set keeps the old value")
	assert.Equal(t, "level", l.Type())
}
