package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	want := Settings{
		GridSize:    40,
		SnapToGrid:  true,
		UndoLimit:   100,
		RecentFiles: []string{"a.graphol", "b.graphol"},
	}
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))

	s, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, Default(), s, "broken config falls back to defaults")
}

func TestLoadClampsNonsenseValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid_size: -5\nundo_limit: 0\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().GridSize, s.GridSize)
	assert.Equal(t, Default().UndoLimit, s.UndoLimit)
}

func TestTouchRecentFiles(t *testing.T) {
	s := Default()
	s.Touch("a.graphol")
	s.Touch("b.graphol")
	s.Touch("a.graphol")
	assert.Equal(t, []string{"a.graphol", "b.graphol"}, s.RecentFiles)

	for i := 0; i < 20; i++ {
		s.Touch(filepath.Join("dir", string(rune('a'+i))+".graphol"))
	}
	assert.Len(t, s.RecentFiles, maxRecentFiles)
}

func TestWatcherDeliversReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Save(path, Default()))

	reloads := make(chan Settings, 4)
	w, err := NewWatcher(path, nil, func(s Settings) { reloads <- s })
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, Save(path, Settings{GridSize: 40, UndoLimit: 10}))

	select {
	case s := <-reloads:
		assert.Equal(t, 40.0, s.GridSize)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload delivered")
	}
}
