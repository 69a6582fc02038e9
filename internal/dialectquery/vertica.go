package dialectquery

import "fmt"

type Vertica struct{}

var _ Querier = (*Vertica)(nil)

func (v *Vertica) CreateTable(tableName string) string {
	q := `CREATE TABLE IF NOT EXISTS %s (
		version VARCHAR(50) NOT NULL,
		run_on TIMESTAMP NOT NULL DEFAULT now(),
		PRIMARY KEY(version)
	)`
	return fmt.Sprintf(q, tableName)
}

func (v *Vertica) InsertVersion(tableName string) string {
	q := `INSERT INTO %s (version) VALUES (?)`
	return fmt.Sprintf(q, tableName)
}

func (v *Vertica) DeleteVersion(tableName string) string {
	q := `DELETE FROM %s WHERE version=?`
	return fmt.Sprintf(q, tableName)
}

func (v *Vertica) ListMigrations(tableName string) string {
	q := `SELECT version, run_on FROM %s ORDER BY version DESC`
	return fmt.Sprintf(q, tableName)
}
