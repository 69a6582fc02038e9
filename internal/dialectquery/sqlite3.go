package dialectquery

import "fmt"

type Sqlite3 struct{}

var _ Querier = (*Sqlite3)(nil)

func (s *Sqlite3) CreateTable(tableName string) string {
	q := `CREATE TABLE IF NOT EXISTS %s (
		version VARCHAR(50) PRIMARY KEY NOT NULL,
		run_on TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlite3) InsertVersion(tableName string) string {
	q := `INSERT INTO %s (version) VALUES (?)`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlite3) DeleteVersion(tableName string) string {
	q := `DELETE FROM %s WHERE version=?`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlite3) ListMigrations(tableName string) string {
	q := `SELECT version, run_on FROM %s ORDER BY version DESC`
	return fmt.Sprintf(q, tableName)
}
