package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileProvider_WriteFileReplaces(t *testing.T) {
	dir := t.TempDir()
	fp := &OSFileProvider{}

	require.NoError(t, fp.WriteFile(dir, "rec", []byte("a much longer first payload")))
	require.NoError(t, fp.WriteFile(dir, "rec", []byte("short")))

	data, err := fp.ReadFile(dir, "rec")
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))

	info, err := os.Stat(filepath.Join(dir, "rec"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestOSFileProvider_ReadDirectorySkipsTempFiles(t *testing.T) {
	dir := t.TempDir()
	fp := &OSFileProvider{}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, TempFilePrefix+"1"), nil, 0o644))

	entries, err := fp.ReadDirectory(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep", entries[0].Name())
}

func TestOSFileProvider_WriteFileMissingDir(t *testing.T) {
	fp := &OSFileProvider{}
	assert.Error(t, fp.WriteFile(filepath.Join(t.TempDir(), "nope"), "rec", []byte("x")))
}
