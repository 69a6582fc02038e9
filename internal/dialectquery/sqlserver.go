package dialectquery

import "fmt"

type Sqlserver struct{}

var _ Querier = (*Sqlserver)(nil)

func (s *Sqlserver) CreateTable(tableName string) string {
	q := `IF OBJECT_ID(N'%[1]s', N'U') IS NULL
CREATE TABLE %[1]s (
	version NVARCHAR(50) NOT NULL PRIMARY KEY,
	run_on DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlserver) InsertVersion(tableName string) string {
	q := `INSERT INTO %s (version) VALUES (@p1)`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlserver) DeleteVersion(tableName string) string {
	q := `DELETE FROM %s WHERE version=@p1`
	return fmt.Sprintf(q, tableName)
}

func (s *Sqlserver) ListMigrations(tableName string) string {
	q := `SELECT version, run_on FROM %s ORDER BY version DESC`
	return fmt.Sprintf(q, tableName)
}
