package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenpaws/vetsite/internal/config"
)

func TestWatchCmd_Use(t *testing.T) {
	assert.Equal(t, "watch", watchCmd.Use)
}

func TestWatchCmd_Short(t *testing.T) {
	assert.Equal(t, "Rebuild the site when data changes", watchCmd.Short)
}

func TestRebuildEvent(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: "data/vets.csv", Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: "data/vets.csv", Op: fsnotify.Create}, true},
		{"remove", fsnotify.Event{Name: "data/vets.csv", Op: fsnotify.Remove}, true},
		{"rename", fsnotify.Event{Name: "data/vets.csv", Op: fsnotify.Rename}, true},
		{"chmod only", fsnotify.Event{Name: "data/vets.csv", Op: fsnotify.Chmod}, false},
		{"hidden file", fsnotify.Event{Name: "data/.vets.csv.swp", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rebuildEvent(tt.event))
		})
	}
}

func TestIsHidden(t *testing.T) {
	assert.True(t, isHidden(".git"))
	assert.True(t, isHidden("data/.catalog.db.tmp"))
	assert.False(t, isHidden("data"))
	assert.False(t, isHidden("data/vets.csv"))
}

func TestWatchDirs_IncludesAssetSubdirectories(t *testing.T) {
	root := t.TempDir()
	assets := filepath.Join(root, "static")
	require.NoError(t, os.MkdirAll(filepath.Join(assets, "css"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(assets, "js"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(assets, ".cache"), 0o755))

	c := config.Default()
	c.Build.DataDir = filepath.Join(root, "data")
	c.Build.AssetsDir = assets

	dirs := watchDirs(c)

	assert.Contains(t, dirs, c.Build.DataDir)
	assert.Contains(t, dirs, assets)
	assert.Contains(t, dirs, filepath.Join(assets, "css"))
	assert.Contains(t, dirs, filepath.Join(assets, "js"))
	assert.NotContains(t, dirs, filepath.Join(assets, ".cache"))
}

func TestWatchDirs_NoAssetsDir(t *testing.T) {
	c := config.Default()
	c.Build.DataDir = "data"
	c.Build.AssetsDir = ""

	dirs := watchDirs(c)

	assert.Equal(t, []string{"data"}, dirs)
}
