package dirmigrate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"unicode/utf8"

	"github.com/pressly/dirmigrate/database"
)

var errInvalidUTF8 = errors.New("content is not valid utf-8")

// RunSQLFile reads filename from fsys and submits its full content to conn as a single batch.
//
// A file with no content is never sent to the database and returns [ErrEmptyMigration]. Read
// failures return a [*FilesystemError] and database failures a [*QueryError].
func RunSQLFile(ctx context.Context, fsys fs.FS, conn database.Execer, filename string) error {
	data, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return &FilesystemError{Op: "read", Path: filename, Err: err}
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyMigration, filename)
	}
	if !utf8.Valid(data) {
		return &FilesystemError{Op: "read", Path: filename, Err: errInvalidUTF8}
	}
	if _, err := conn.ExecContext(ctx, string(data)); err != nil {
		return &QueryError{Path: filename, Err: err}
	}
	return nil
}
