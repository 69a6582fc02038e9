package database

import (
	"github.com/pressly/dirmigrate/internal/dialectquery"
)

// Dialect is the type of database dialect.
type Dialect string

const (
	DialectClickHouse Dialect = "clickhouse"
	DialectMSSQL      Dialect = "mssql"
	DialectMySQL      Dialect = "mysql"
	DialectPostgres   Dialect = "postgres"
	DialectRedshift   Dialect = "redshift"
	DialectSpanner    Dialect = "spanner"
	DialectSQLite3    Dialect = "sqlite3"
	DialectTiDB       Dialect = "tidb"
	DialectTurso      Dialect = "turso"
	DialectVertica    Dialect = "vertica"
	DialectYdB        Dialect = "ydb"

	// DialectCustom is a special dialect that allows users to provide their own [Store]
	// implementation when constructing a provider.
	DialectCustom Dialect = "custom"
)

var queriers = map[Dialect]dialectquery.Querier{
	DialectClickHouse: &dialectquery.Clickhouse{},
	DialectMSSQL:      &dialectquery.Sqlserver{},
	DialectMySQL:      &dialectquery.Mysql{},
	DialectPostgres:   &dialectquery.Postgres{},
	DialectRedshift:   &dialectquery.Redshift{},
	DialectSpanner:    &dialectquery.Spanner{},
	DialectSQLite3:    &dialectquery.Sqlite3{},
	DialectTiDB:       &dialectquery.Tidb{},
	DialectTurso:      &dialectquery.Turso{},
	DialectVertica:    &dialectquery.Vertica{},
	DialectYdB:        &dialectquery.Ydb{},
}
