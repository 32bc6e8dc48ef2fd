package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSpecFile(t *testing.T) {
	assert.True(t, isSpecFile("prefabs/level.yaml"))
	assert.True(t, isSpecFile("LEVEL.YML"))
	assert.False(t, isSpecFile("level.yaml.swp"))
	assert.False(t, isSpecFile("notes.txt"))
}

func TestWatcherReportsChangedPrefab(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "character.yaml"), []byte("name: c\n"), 0o644))

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, w.Drain()...)
		return len(got) > 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"character.yaml"}, got)
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	assert.Empty(t, w.Drain())

	var nilWatcher *Watcher
	assert.NoError(t, nilWatcher.Close())
}
