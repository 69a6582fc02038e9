package dialectquery

import "fmt"

// Spanner uses the GoogleSQL dialect. run_on is a commit timestamp column.
type Spanner struct{}

var _ Querier = (*Spanner)(nil)

func (s *Spanner) CreateTable(tableName string) string {
	q := `CREATE TABLE IF NOT EXISTS %s (
		version STRING(50) NOT NULL,
		run_on TIMESTAMP NOT NULL OPTIONS (allow_commit_timestamp=true)
	) PRIMARY KEY (version)`
	return fmt.Sprintf(q, tableName)
}

func (s *Spanner) InsertVersion(tableName string) string {
	q := `INSERT INTO %s (version, run_on) VALUES (@p1, PENDING_COMMIT_TIMESTAMP())`
	return fmt.Sprintf(q, tableName)
}

func (s *Spanner) DeleteVersion(tableName string) string {
	q := `DELETE FROM %s WHERE version = @p1`
	return fmt.Sprintf(q, tableName)
}

func (s *Spanner) ListMigrations(tableName string) string {
	q := `SELECT version, run_on FROM %s ORDER BY version DESC`
	return fmt.Sprintf(q, tableName)
}
