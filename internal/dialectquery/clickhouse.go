package dialectquery

import "fmt"

type Clickhouse struct{}

var _ Querier = (*Clickhouse)(nil)

func (c *Clickhouse) CreateTable(tableName string) string {
	q := `CREATE TABLE IF NOT EXISTS %s (
		version String,
		run_on DateTime64(9, 'UTC') default now64(9, 'UTC')
	)
	ENGINE = KeeperMap('/dirmigrate_version')
	PRIMARY KEY version`
	return fmt.Sprintf(q, tableName)
}

func (c *Clickhouse) InsertVersion(tableName string) string {
	q := `INSERT INTO %s (version) VALUES ($1)`
	return fmt.Sprintf(q, tableName)
}

func (c *Clickhouse) DeleteVersion(tableName string) string {
	q := `ALTER TABLE %s DELETE WHERE version = $1 SETTINGS mutations_sync = 2`
	return fmt.Sprintf(q, tableName)
}

func (c *Clickhouse) ListMigrations(tableName string) string {
	q := `SELECT version, run_on FROM %s ORDER BY version DESC`
	return fmt.Sprintf(q, tableName)
}
