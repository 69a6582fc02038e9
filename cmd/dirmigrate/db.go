package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/mfridman/interpolate"
	"github.com/pressly/dirmigrate/database"
	"github.com/sethvargo/go-retry"
)

// drivers maps the DRIVER argument to a dialect and the database/sql driver name registered by the
// driver_*.go files.
var drivers = map[string]struct {
	dialect database.Dialect
	name    string
}{
	"postgres":   {database.DialectPostgres, "pgx"},
	"pgx":        {database.DialectPostgres, "pgx"},
	"redshift":   {database.DialectRedshift, "pgx"},
	"mysql":      {database.DialectMySQL, "mysql"},
	"mymysql":    {database.DialectMySQL, "mymysql"},
	"tidb":       {database.DialectTiDB, "mysql"},
	"sqlite3":    {database.DialectSQLite3, "sqlite"},
	"sqlite":     {database.DialectSQLite3, "sqlite"},
	"mssql":      {database.DialectMSSQL, "sqlserver"},
	"sqlserver":  {database.DialectMSSQL, "sqlserver"},
	"clickhouse": {database.DialectClickHouse, "clickhouse"},
	"vertica":    {database.DialectVertica, "vertica"},
	"ydb":        {database.DialectYdB, "ydb"},
	"turso":      {database.DialectTurso, "libsql"},
	"spanner":    {database.DialectSpanner, "spanner"},
}

type envWrapper struct{}

var _ interpolate.Env = (*envWrapper)(nil)

func (e *envWrapper) Get(key string) (string, bool) {
	return os.LookupEnv(key)
}

// openDB opens and pings a database. ${VAR} references in dbstring are expanded from the
// environment first.
func openDB(ctx context.Context, driver, dbstring, certfile string) (database.Dialect, *sql.DB, error) {
	d, ok := drivers[driver]
	if !ok {
		return "", nil, fmt.Errorf("%q driver not supported", driver)
	}
	dbstring, err := interpolate.Interpolate(&envWrapper{}, dbstring)
	if err != nil {
		return "", nil, fmt.Errorf("failed to interpolate dbstring: %w", err)
	}
	dbstring, err = normalizeDBString(d.name, dbstring, certfile)
	if err != nil {
		return "", nil, err
	}
	db, err := sql.Open(d.name, dbstring)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open %s connection: %w", driver, err)
	}
	if err := ping(ctx, db); err != nil {
		_ = db.Close()
		return "", nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}
	return d.dialect, db, nil
}

// ping retries for a short while, databases started alongside the CLI may not accept connections
// yet.
func ping(ctx context.Context, db *sql.DB) error {
	backoff := retry.WithMaxRetries(4, retry.NewConstant(500*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

func normalizeDBString(driverName, dbstring, certfile string) (string, error) {
	switch driverName {
	case "mysql":
		return normalizeMySQL(dbstring, certfile)
	case "ydb":
		return normalizeYDBDSN(dbstring)
	}
	return dbstring, nil
}

// ydbDefaultParams make the database/sql driver accept numeric placeholders and run schema changes.
var ydbDefaultParams = map[string]string{
	"go_query_mode":    "scripting",
	"go_fake_tx":       "scripting",
	"go_query_binding": "declare,numeric",
}

func normalizeYDBDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse ydb dbstring: %w", err)
	}
	q := u.Query()
	for k, v := range ydbDefaultParams {
		if !q.Has(k) {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
