package dirmigrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindMigrationsDir(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	want := filepath.Join(root, DefaultDirName)
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(want, 0o755))
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := FindMigrationsDir(nested)
	require.NoError(t, err)
	require.Equal(t, want, got)

	got, err = FindMigrationsDir(root)
	require.NoError(t, err)
	require.Equal(t, want, got)

	// The closest directory wins.
	closer := filepath.Join(root, "a", DefaultDirName)
	require.NoError(t, os.Mkdir(closer, 0o755))
	got, err = FindMigrationsDir(nested)
	require.NoError(t, err)
	require.Equal(t, closer, got)
}

func TestFindMigrationsDirSkipsFiles(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	want := filepath.Join(root, DefaultDirName)
	require.NoError(t, os.Mkdir(want, 0o755))
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// A regular file named "migrations" does not stop the search.
	require.NoError(t, os.WriteFile(filepath.Join(sub, DefaultDirName), nil, 0o644))

	got, err := FindMigrationsDir(sub)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
