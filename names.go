package dirmigrate

import (
	"path"
	"path/filepath"
	"unicode/utf8"
)

const invalidFilename = "invalid utf-8 in filename"

// Name returns a human-readable name for m: the last element of its path, or its version when it
// has no path or the element is not valid UTF-8.
func Name(m Migration) string {
	if p := m.Path(); p != "" {
		base := path.Base(filepath.ToSlash(p))
		if base != "." && base != "/" && utf8.ValidString(base) {
			return base
		}
	}
	return m.Version()
}

// FilePath returns the path of file inside the directory of m. It returns [ErrNoSourcePath] for
// migrations without a path. A path that is not valid UTF-8 is replaced by a placeholder.
func FilePath(m Migration, file string) (string, error) {
	p := m.Path()
	if p == "" {
		return "", ErrNoSourcePath
	}
	joined := path.Join(filepath.ToSlash(p), file)
	if !utf8.ValidString(joined) {
		return invalidFilename, nil
	}
	return filepath.FromSlash(joined), nil
}
