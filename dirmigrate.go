// Package dirmigrate discovers and applies directory-based SQL migrations.
//
// A migration is a directory holding an up.sql script, a down.sql script and, optionally, a
// metadata.toml file:
//
//	migrations/
//	    2024-01-15-093000_create_users/
//	        up.sql
//	        down.sql
//	        metadata.toml
//
// The version of a migration is the part of the directory name before the first underscore, with
// hyphens removed. The directory above yields version "20240115093000".
//
// Use [Load] or [Collect] to discover migrations and call Up or Down on them directly, or use a
// [Provider] to apply pending migrations and record them in a version table.
package dirmigrate

const (
	// UpFile is the script applied by [Migration.Up].
	UpFile = "up.sql"
	// DownFile is the script applied by [Migration.Down].
	DownFile = "down.sql"
	// MetadataFile is the optional TOML document describing a migration.
	MetadataFile = "metadata.toml"

	// KeyRunInTransaction is the metadata key controlling whether a [Provider] wraps the migration
	// in a transaction. Defaults to true.
	KeyRunInTransaction = "run_in_transaction"
)
