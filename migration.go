package dirmigrate

import (
	"context"

	"github.com/pressly/dirmigrate/database"
)

// Migration is a single versioned schema change.
//
// Implementations are immutable once constructed, so they may be inspected from several goroutines.
// A connection passed to Up or Down must not be shared with other goroutines while the call runs.
type Migration interface {
	// Version is the identity of the migration. Never empty.
	Version() string
	// Up applies the migration.
	Up(ctx context.Context, conn database.Execer) error
	// Down reverts the migration.
	Down(ctx context.Context, conn database.Execer) error
	// Path is the directory backing the migration, or "" for migrations that do not come from the
	// filesystem.
	Path() string
	// Metadata returns the metadata of the migration, or nil when it has none.
	Metadata() Metadata
}

// GoFunc is a migration step written in Go.
type GoFunc func(ctx context.Context, conn database.Execer) error

// NewGoMigration returns a migration backed by Go functions instead of SQL files. A nil up or down
// function is a no-op. md may be nil.
//
// Go migrations have no path, so [Name] reports their version.
func NewGoMigration(version string, up, down GoFunc, md Metadata) Migration {
	return &goMigration{
		version:  version,
		up:       up,
		down:     down,
		metadata: md,
	}
}

type goMigration struct {
	version  string
	up, down GoFunc
	metadata Metadata
}

var _ Migration = (*goMigration)(nil)

func (g *goMigration) Version() string { return g.version }
func (g *goMigration) Path() string    { return "" }

func (g *goMigration) Metadata() Metadata { return g.metadata }

func (g *goMigration) Up(ctx context.Context, conn database.Execer) error {
	if g.up == nil {
		return nil
	}
	return g.up(ctx, conn)
}

func (g *goMigration) Down(ctx context.Context, conn database.Execer) error {
	if g.down == nil {
		return nil
	}
	return g.down(ctx, conn)
}

// RunInTransaction reports whether m should be applied inside a transaction. It reads the
// run_in_transaction metadata key and defaults to true.
func RunInTransaction(m Migration) (bool, error) {
	md := m.Metadata()
	if md == nil {
		return true, nil
	}
	useTx, ok, err := Lookup[bool](md, KeyRunInTransaction)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	return useTx, nil
}
