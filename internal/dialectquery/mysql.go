package dialectquery

import "fmt"

type Mysql struct{}

var _ Querier = (*Mysql)(nil)

func (m *Mysql) CreateTable(tableName string) string {
	q := `CREATE TABLE IF NOT EXISTS %s (
		version VARCHAR(50) PRIMARY KEY NOT NULL,
		run_on TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	return fmt.Sprintf(q, tableName)
}

func (m *Mysql) InsertVersion(tableName string) string {
	q := `INSERT INTO %s (version) VALUES (?)`
	return fmt.Sprintf(q, tableName)
}

func (m *Mysql) DeleteVersion(tableName string) string {
	q := `DELETE FROM %s WHERE version=?`
	return fmt.Sprintf(q, tableName)
}

func (m *Mysql) ListMigrations(tableName string) string {
	q := `SELECT version, run_on FROM %s ORDER BY version DESC`
	return fmt.Sprintf(q, tableName)
}
