package dialectquery

import "fmt"

type Redshift struct {
	Postgres
}

var _ Querier = (*Redshift)(nil)

func (r *Redshift) CreateTable(tableName string) string {
	q := `CREATE TABLE IF NOT EXISTS %s (
		version VARCHAR(50) NOT NULL,
		run_on TIMESTAMP NOT NULL DEFAULT sysdate,
		PRIMARY KEY(version)
	)`
	return fmt.Sprintf(q, tableName)
}
