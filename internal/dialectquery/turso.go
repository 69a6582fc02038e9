package dialectquery

// Turso speaks the SQLite dialect over libSQL.
type Turso struct {
	Sqlite3
}

var _ Querier = (*Turso)(nil)
