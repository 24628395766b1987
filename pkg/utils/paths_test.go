package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/eduquest/db.sqlite")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "eduquest", "db.sqlite"), got)

	got, err = ExpandPath("relative.db")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))

	_, err = ExpandPath("")
	assert.Error(t, err)
}

func TestResolveAndEnsureDBPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	got, err := ResolveAndEnsureDBPath(filepath.Join(dir, "eduquest_gui.db"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "eduquest_gui.db"), got)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	got, err = ResolveAndEnsureDBPath(":memory:")
	require.NoError(t, err)
	assert.Equal(t, ":memory:", got)
}

func TestEnsureDir_RejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	assert.Error(t, EnsureDir(file))
	assert.NoError(t, EnsureDir(filepath.Dir(file)))
}
