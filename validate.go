package dirmigrate

import (
	"fmt"
	"io/fs"
	"strings"
	"unicode/utf8"
)

// IsMigrationDir reports whether dir holds both an up.sql and a down.sql script. Entries starting
// with a dot and unrecognized entries are ignored.
//
// A dir that cannot be listed, because it is missing, is a regular file or is not readable, is not a
// migration directory and reports false with no error. An entry whose name is not valid UTF-8
// returns a [*FilesystemError].
func IsMigrationDir(fsys fs.FS, dir string) (bool, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return false, nil
	}
	var hasUp, hasDown bool
	for _, entry := range entries {
		name := entry.Name()
		if !utf8.ValidString(name) {
			return false, &FilesystemError{
				Op:   "list",
				Path: dir,
				Err:  fmt.Errorf("file name %q is not valid utf-8", name),
			}
		}
		if strings.HasPrefix(name, ".") {
			continue
		}
		switch name {
		case UpFile:
			hasUp = true
		case DownFile:
			hasDown = true
		}
	}
	return hasUp && hasDown, nil
}
