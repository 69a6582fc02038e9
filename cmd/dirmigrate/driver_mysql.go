//go:build !no_mysql

package main

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/go-sql-driver/mysql"
	_ "github.com/ziutek/mymysql/godrv"
)

const tlsConfigKey = "custom"

// normalizeMySQL always sets parseTime, so the run_on column of the version table scans into a
// time.Time. With a certfile, the connection uses TLS with the given root CAs.
func normalizeMySQL(dsn, certfile string) (string, error) {
	isTLS := certfile != ""
	if isTLS {
		if err := registerTLSConfig(certfile); err != nil {
			return "", fmt.Errorf("failed to register TLS config: %w", err)
		}
	}
	dsn, err := normalizeMySQLDSN(dsn, isTLS)
	if err != nil {
		return "", fmt.Errorf("failed to normalize MySQL connection string: %w", err)
	}
	return dsn, nil
}

func normalizeMySQLDSN(dsn string, tls bool) (string, error) {
	config, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	config.ParseTime = true
	if tls {
		config.TLSConfig = tlsConfigKey
	}
	return config.FormatDSN(), nil
}

func registerTLSConfig(pemfile string) error {
	rootCertPool := x509.NewCertPool()
	pem, err := os.ReadFile(pemfile)
	if err != nil {
		return err
	}
	if ok := rootCertPool.AppendCertsFromPEM(pem); !ok {
		return fmt.Errorf("failed to append PEM: %q", pemfile)
	}
	return mysql.RegisterTLSConfig(tlsConfigKey, &tls.Config{
		RootCAs: rootCertPool,
	})
}
