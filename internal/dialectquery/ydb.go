package dialectquery

import "fmt"

type Ydb struct{}

var _ Querier = (*Ydb)(nil)

func (c *Ydb) CreateTable(tableName string) string {
	q := `CREATE TABLE IF NOT EXISTS %s (
		version Utf8,
		run_on Timestamp,
		PRIMARY KEY(version)
	)`
	return fmt.Sprintf(q, tableName)
}

func (c *Ydb) InsertVersion(tableName string) string {
	q := `INSERT INTO %s (version, run_on) VALUES ($1, CurrentUtcTimestamp())`
	return fmt.Sprintf(q, tableName)
}

func (c *Ydb) DeleteVersion(tableName string) string {
	q := `DELETE FROM %s WHERE version = $1`
	return fmt.Sprintf(q, tableName)
}

func (c *Ydb) ListMigrations(tableName string) string {
	q := `SELECT version, run_on FROM %s ORDER BY version DESC`
	return fmt.Sprintf(q, tableName)
}
