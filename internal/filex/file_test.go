package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "fittrack-data")

	got, err := EnsureDir(dir)
	require.NoError(t, err)
	require.Equal(t, dir, got)

	info, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestEnsureDir_ExistingDirectoryIsFine(t *testing.T) {
	tmp := t.TempDir()

	got1, err := EnsureDir(tmp)
	require.NoError(t, err)
	got2, err := EnsureDir(tmp)
	require.NoError(t, err)
	require.Equal(t, got1, got2)
}

func TestWriteFileExclusive_WritesOnce(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "device.key")

	require.NoError(t, WriteFileExclusive(path, []byte("secret")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("secret"), data)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// Second write must fail rather than overwrite.
	require.Error(t, WriteFileExclusive(path, []byte("other")))
}
