package dirmigrate

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFormat is returned when a path is not a recognized migration. Use errors.Is to
	// match it; the concrete error is an [*UnknownFormatError] carrying the offending path.
	ErrUnknownFormat = errors.New("unknown migration format")

	// ErrInvalidMetadata is returned when a metadata file cannot be decoded or a metadata value
	// cannot be converted to the requested type.
	ErrInvalidMetadata = errors.New("invalid metadata")

	// ErrEmptyMigration is returned when a migration script exists but has no content. Empty
	// scripts are never sent to the database.
	ErrEmptyMigration = errors.New("empty migration")

	// ErrQueryFailed is returned when the database rejects a migration script.
	ErrQueryFailed = errors.New("query execution failed")

	// ErrNoSourcePath is returned by [FilePath] for migrations that are not backed by a directory.
	ErrNoSourcePath = errors.New("migration has no source path")

	// ErrMigrationsDirNotFound is returned by [FindMigrationsDir].
	ErrMigrationsDirNotFound = errors.New("migrations directory not found")

	// ErrNoMigrations is returned by [NewProvider] when no migrations are found.
	ErrNoMigrations = errors.New("no migrations found")

	// ErrNoNextVersion when there is no pending migration to apply.
	ErrNoNextVersion = errors.New("no next version found")

	// ErrNoCurrentVersion when there is no applied migration to revert.
	ErrNoCurrentVersion = errors.New("no current version found")
)

// UnknownFormatError reports a path that is not a migration: it is missing up.sql or down.sql, or
// no version can be derived from its name.
type UnknownFormatError struct {
	Path string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnknownFormat, e.Path)
}

func (e *UnknownFormatError) Is(target error) bool {
	return target == ErrUnknownFormat
}

// MetadataError wraps a decode or conversion failure of migration metadata. Key is empty when the
// whole metadata file failed to decode.
type MetadataError struct {
	Path string
	Key  string
	Err  error
}

func (e *MetadataError) Error() string {
	switch {
	case e.Key != "":
		return fmt.Sprintf("%v: key %q: %v", ErrInvalidMetadata, e.Key, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%v: %s: %v", ErrInvalidMetadata, e.Path, e.Err)
	}
	return fmt.Sprintf("%v: %v", ErrInvalidMetadata, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

func (e *MetadataError) Is(target error) bool {
	return target == ErrInvalidMetadata
}

// FilesystemError is any I/O failure on a path that was expected to be readable.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// QueryError is returned when the connection rejects a migration script.
type QueryError struct {
	Path string
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrQueryFailed, e.Path, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

func (e *QueryError) Is(target error) bool {
	return target == ErrQueryFailed
}

// DuplicateVersionError is returned when two migrations in the same directory share a version.
type DuplicateVersionError struct {
	Version  string
	Existing string
	Current  string
}

func (e *DuplicateVersionError) Error() string {
	return fmt.Sprintf("found duplicate migration version %s:\n\texisting: %s\n\tcurrent: %s",
		e.Version,
		e.Existing,
		e.Current,
	)
}

// PartialError is returned when a migration fails, but some migrations already got applied.
type PartialError struct {
	// Applied are migrations that were applied successfully before the error occurred. May be
	// empty.
	Applied []*MigrationResult
	// Failed contains the result of the migration that failed. Cannot be nil.
	Failed *MigrationResult
	// Err is the error that occurred while running the migration and caused the failure.
	Err error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf(
		"partial migration error (%s, version:%s): %v",
		Name(e.Failed.Migration), e.Failed.Migration.Version(), e.Err,
	)
}

func (e *PartialError) Unwrap() error { return e.Err }
