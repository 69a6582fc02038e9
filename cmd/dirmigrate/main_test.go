package main

import (
	"bytes"
	"context"
	"flag"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pressly/dirmigrate"
	"github.com/stretchr/testify/require"
)

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected string
	}{
		{name: "no values", input: []string{}, expected: ""},
		{name: "all empty values", input: []string{"", "", ""}, expected: ""},
		{name: "single non-empty value at start", input: []string{"value", "", ""}, expected: "value"},
		{name: "single non-empty value in middle", input: []string{"", "value", ""}, expected: "value"},
		{name: "single non-empty value at end", input: []string{"", "", "value"}, expected: "value"},
		{name: "multiple non-empty values", input: []string{"first", "second", "third"}, expected: "first"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, firstNonEmpty(tt.input...))
		})
	}
}

func TestNormalizeMySQLDSN(t *testing.T) {
	t.Parallel()
	out, err := normalizeMySQLDSN("user:password@tcp(localhost:3306)/app", false)
	require.NoError(t, err)
	require.Contains(t, out, "parseTime=true")
	require.NotContains(t, out, "tls=")

	out, err = normalizeMySQLDSN("user:password@tcp(localhost:3306)/app", true)
	require.NoError(t, err)
	require.Contains(t, out, "tls=custom")

	_, err = normalizeMySQLDSN("not a dsn", false)
	require.Error(t, err)
}

func TestNormalizeYDBDSN(t *testing.T) {
	t.Parallel()
	out, err := normalizeYDBDSN("grpc://localhost:2136/local?go_query_mode=data")
	require.NoError(t, err)
	u, err := url.Parse(out)
	require.NoError(t, err)
	q := u.Query()
	require.Equal(t, "data", q.Get("go_query_mode"))
	require.Equal(t, "scripting", q.Get("go_fake_tx"))
	require.Equal(t, "declare,numeric", q.Get("go_query_binding"))
	require.Equal(t, "/local", u.Path)
}

func TestParseArgs(t *testing.T) {
	clearEnv(t)
	var out bytes.Buffer

	inv, err := parseArgs([]string{"-env=none", "sqlite3", "./foo.db", "up"}, &out)
	require.NoError(t, err)
	require.Equal(t, "sqlite3", inv.driver)
	require.Equal(t, "./foo.db", inv.dbstring)
	require.Equal(t, "up", inv.command)
	require.Empty(t, inv.args)

	// Flags may follow the positional arguments.
	inv, err = parseArgs([]string{"sqlite3", "./foo.db", "status", "-dir=db/migrations", "-v", "-env=none"}, &out)
	require.NoError(t, err)
	require.Equal(t, "status", inv.command)
	require.Equal(t, "db/migrations", inv.dir)
	require.True(t, inv.verbose)

	inv, err = parseArgs([]string{"-env=none", "create", "add", "users"}, &out)
	require.NoError(t, err)
	require.Equal(t, "create", inv.command)
	require.Equal(t, []string{"add", "users"}, inv.args)
	require.Empty(t, inv.driver)

	_, err = parseArgs([]string{"-env=none"}, &out)
	require.ErrorIs(t, err, flag.ErrHelp)
	require.Contains(t, out.String(), "Usage: dirmigrate")

	_, err = parseArgs([]string{"-env=none", "sqlite3", "up"}, &out)
	require.ErrorIs(t, err, flag.ErrHelp)

	t.Setenv(envKeyDriver, "postgres")
	t.Setenv(envKeyDBString, "postgres://localhost/app")
	t.Setenv(envKeyTable, "versions")
	inv, err = parseArgs([]string{"-env=none", "down"}, &out)
	require.NoError(t, err)
	require.Equal(t, "postgres", inv.driver)
	require.Equal(t, "postgres://localhost/app", inv.dbstring)
	require.Equal(t, "down", inv.command)
	require.Equal(t, "versions", inv.table)
}

func TestParseArgsEnvFile(t *testing.T) {
	clearEnv(t)
	// Variables that are already set, even to "", take precedence over the env file.
	for _, k := range []string{envKeyDriver, envKeyDBString, envKeyMigrationDir, envKeyTable} {
		require.NoError(t, os.Unsetenv(k))
	}
	envFile := filepath.Join(t.TempDir(), "test.env")
	content := envKeyDriver + "=sqlite3\n" + envKeyDBString + "=./from-env.db\n" + envKeyMigrationDir + "=./schema\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	inv, err := parseArgs([]string{"-env=" + envFile, "status"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, "sqlite3", inv.driver)
	require.Equal(t, "./from-env.db", inv.dbstring)
	require.Equal(t, "./schema", inv.dir)
	require.Equal(t, "status", inv.command)

	// A missing env file is ignored.
	_, err = parseArgs([]string{"-env=" + filepath.Join(t.TempDir(), "missing.env"), "validate"}, &bytes.Buffer{})
	require.NoError(t, err)
}

func TestRun(t *testing.T) {
	clearEnv(t)
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "migrations")
	dbPath := filepath.Join(t.TempDir(), "sql.db")

	var out bytes.Buffer
	err := run(ctx, []string{"-env=none", "-dir=" + dir, "create", "users"}, &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "Created new migration")

	migrations, err := dirmigrate.Collect(dir)
	require.NoError(t, err)
	require.Len(t, migrations, 1)
	up := filepath.Join(dir, dirmigrate.Name(migrations[0]), dirmigrate.UpFile)
	down := filepath.Join(dir, dirmigrate.Name(migrations[0]), dirmigrate.DownFile)
	require.NoError(t, os.WriteFile(up, []byte("CREATE TABLE users (id INTEGER PRIMARY KEY);"), 0o644))
	require.NoError(t, os.WriteFile(down, []byte("DROP TABLE users;"), 0o644))

	out.Reset()
	require.NoError(t, run(ctx, []string{"-env=none", "-dir=" + dir, "validate"}, &out))
	require.Contains(t, out.String(), "1 migrations")

	out.Reset()
	require.NoError(t, run(ctx, []string{"-env=none", "-dir=" + dir, "sqlite3", dbPath, "status"}, &out))
	require.Contains(t, out.String(), "Pending")

	out.Reset()
	require.NoError(t, run(ctx, []string{"-env=none", "-dir=" + dir, "sqlite3", dbPath, "up"}, &out))
	require.True(t, strings.HasPrefix(out.String(), "OK"), out.String())

	out.Reset()
	require.NoError(t, run(ctx, []string{"-env=none", "-dir=" + dir, "sqlite3", dbPath, "up"}, &out))
	require.Contains(t, out.String(), "no migrations to run")

	out.Reset()
	require.NoError(t, run(ctx, []string{"-env=none", "-dir=" + dir, "sqlite3", dbPath, "redo"}, &out))
	require.Equal(t, 2, strings.Count(out.String(), "OK"))

	out.Reset()
	require.NoError(t, run(ctx, []string{"-env=none", "-dir=" + dir, "sqlite3", dbPath, "down"}, &out))
	require.Contains(t, out.String(), "down")

	err = run(ctx, []string{"-env=none", "-dir=" + dir, "sqlite3", dbPath, "down"}, &out)
	require.ErrorIs(t, err, dirmigrate.ErrNoCurrentVersion)

	err = run(ctx, []string{"-env=none", "-dir=" + dir, "sqlite3", dbPath, "sideways"}, &out)
	require.Error(t, err)

	err = run(ctx, []string{"-env=none", "-dir=" + dir, "oracle", dbPath, "up"}, &out)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not supported")
}

func TestNewLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	var logger dirmigrate.Logger = newLogger(&buf)
	logger.Printf("OK up %s", "00001_users")
	require.Contains(t, buf.String(), "OK up 00001_users")
	require.Contains(t, buf.String(), "level=info")
}

func TestRunInterpolatesDBString(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "migrations")
	_, err := dirmigrate.Create(dir, "noop", time.Now())
	require.NoError(t, err)

	t.Setenv("DIRMIGRATE_TEST_DB_DIR", t.TempDir())
	var out bytes.Buffer
	err = run(context.Background(), []string{"-env=none", "-dir=" + dir, "sqlite3", "${DIRMIGRATE_TEST_DB_DIR}/sql.db", "up"}, &out)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(os.Getenv("DIRMIGRATE_TEST_DB_DIR"), "sql.db"))
	require.NoError(t, err)
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{envKeyDriver, envKeyDBString, envKeyMigrationDir, envKeyTable} {
		t.Setenv(k, "")
	}
}

func TestCreateFindsMigrationsDir(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	want := filepath.Join(root, dirmigrate.DefaultDirName)
	sub := filepath.Join(root, "internal", "app")
	require.NoError(t, os.MkdirAll(want, 0o755))
	require.NoError(t, os.MkdirAll(sub, 0o755))
	t.Chdir(sub)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-env=none", "create", "users"}, &out))
	migrations, err := dirmigrate.Collect(want)
	require.NoError(t, err)
	require.Len(t, migrations, 1)
	// No stray directory next to the working directory.
	_, err = os.Stat(filepath.Join(sub, dirmigrate.DefaultDirName))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCreateWithoutMigrationsDir(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	t.Chdir(root)

	got, err := resolveCreateDir("")
	require.NoError(t, err)
	require.Equal(t, dirmigrate.DefaultDirName, got)

	got, err = resolveCreateDir(filepath.Join("db", "migrations"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join("db", "migrations"), got)
}
