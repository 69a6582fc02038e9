package dirmigrate

import (
	"context"
	"io/fs"
	"path"

	"github.com/pressly/dirmigrate/database"
)

// sqlMigration is a migration directory with an up.sql and a down.sql script.
type sqlMigration struct {
	fsys     fs.FS
	dir      string
	version  string
	metadata *tomlMetadata
}

var _ Migration = (*sqlMigration)(nil)

func (m *sqlMigration) Version() string { return m.version }
func (m *sqlMigration) Path() string    { return m.dir }

func (m *sqlMigration) Metadata() Metadata {
	// Avoid returning a typed nil.
	if m.metadata == nil {
		return nil
	}
	return m.metadata
}

func (m *sqlMigration) Up(ctx context.Context, conn database.Execer) error {
	return RunSQLFile(ctx, m.fsys, conn, path.Join(m.dir, UpFile))
}

func (m *sqlMigration) Down(ctx context.Context, conn database.Execer) error {
	return RunSQLFile(ctx, m.fsys, conn, path.Join(m.dir, DownFile))
}
