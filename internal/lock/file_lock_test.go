package lock

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")
	first := New(path)
	second := New(path)

	assert.Equal(t, path, first.Path())
	assert.False(t, second.IsRunning())

	ok, err := first.TryLock()
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = second.TryLock()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, second.IsRunning())

	require.NoError(t, first.Unlock())

	ok, err = second.TryLock()
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, second.Unlock())
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "run.lock", filepath.Base(DefaultPath()))
}
