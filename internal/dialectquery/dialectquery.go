// Package dialectquery holds the dialect specific SQL used to manage the version table.
package dialectquery

// Querier is the interface that wraps the basic methods to create a dialect specific query.
//
// The version table has two columns: version, a short string and the primary key, and run_on, the
// time the migration was applied.
type Querier interface {
	// CreateTable returns the SQL query string to create the version table. The query must be
	// safe to run when the table already exists.
	CreateTable(tableName string) string

	// InsertVersion returns the SQL query string to record a version. It takes one argument, the
	// version.
	InsertVersion(tableName string) string

	// DeleteVersion returns the SQL query string to remove a version. It takes one argument, the
	// version.
	DeleteVersion(tableName string) string

	// ListMigrations returns the SQL query string to list all applied migrations in descending
	// order by version.
	//
	// The query should return the version and run_on columns.
	ListMigrations(tableName string) string
}
