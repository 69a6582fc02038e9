package dialectquery

import "fmt"

type Postgres struct{}

var _ Querier = (*Postgres)(nil)

func (p *Postgres) CreateTable(tableName string) string {
	q := `CREATE TABLE IF NOT EXISTS %s (
		version VARCHAR(50) PRIMARY KEY NOT NULL,
		run_on TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	return fmt.Sprintf(q, tableName)
}

func (p *Postgres) InsertVersion(tableName string) string {
	q := `INSERT INTO %s (version) VALUES ($1)`
	return fmt.Sprintf(q, tableName)
}

func (p *Postgres) DeleteVersion(tableName string) string {
	q := `DELETE FROM %s WHERE version=$1`
	return fmt.Sprintf(q, tableName)
}

func (p *Postgres) ListMigrations(tableName string) string {
	q := `SELECT version, run_on FROM %s ORDER BY version DESC`
	return fmt.Sprintf(q, tableName)
}
