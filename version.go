package dirmigrate

import (
	"path"
	"path/filepath"
	"strings"
)

// VersionFromPath derives a migration version from the last element of p: the text before the
// first underscore, with all hyphens removed.
//
//	migrations/12345                        => 12345
//	migrations/2024-01-15-093000_add_users  => 20240115093000
//	migrations/create_stuff_12345           => create
//
// The leading segment does not have to be numeric. An empty version is an [*UnknownFormatError].
func VersionFromPath(p string) (string, error) {
	base := path.Base(filepath.ToSlash(p))
	if base == "." || base == ".." || base == "/" {
		return "", &UnknownFormatError{Path: p}
	}
	segment, _, _ := strings.Cut(base, "_")
	version := strings.ReplaceAll(segment, "-", "")
	if version == "" {
		return "", &UnknownFormatError{Path: p}
	}
	return version, nil
}
