package dirmigrate

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDirName is the directory name [FindMigrationsDir] looks for.
const DefaultDirName = "migrations"

// FindMigrationsDir looks for a directory named "migrations" in start and then in each of its
// parents, and returns the first one found.
func FindMigrationsDir(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, DefaultDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: searched %s and its parents", ErrMigrationsDirNotFound, start)
		}
		dir = parent
	}
}
