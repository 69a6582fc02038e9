//go:build no_mysql

package main

func normalizeMySQL(dsn, _ string) (string, error) {
	return dsn, nil
}
