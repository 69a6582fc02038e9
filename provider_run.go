package dirmigrate

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pressly/dirmigrate/database"
	"go.uber.org/multierr"
)

func (p *Provider) up(ctx context.Context, byOne bool) (_ []*MigrationResult, retErr error) {
	conn, cleanup, err := p.initialize(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		retErr = multierr.Append(retErr, cleanup())
	}()
	apply, err := p.pending(ctx, conn)
	if err != nil {
		return nil, err
	}
	if byOne && len(apply) > 1 {
		apply = apply[:1]
	}
	return p.runMigrations(ctx, conn, apply, directionUp)
}

// runMigrations runs migrations sequentially in the given direction, each one on its own.
//
// If the migrations slice is empty, this function returns nil with no error.
func (p *Provider) runMigrations(
	ctx context.Context,
	conn *sql.Conn,
	migrations []Migration,
	direction string,
) ([]*MigrationResult, error) {
	// Avoid allocating a slice because we may have a partial migration error. 1. Avoid giving the
	// impression that N migrations were applied when in fact some were not 2. Avoid the caller
	// having to check for nil results
	var results []*MigrationResult
	for _, m := range migrations {
		current := &MigrationResult{
			Migration: m,
			Direction: direction,
		}
		start := time.Now()
		err := p.runIndividually(ctx, conn, m, direction)
		current.Duration = time.Since(start)
		if err != nil {
			current.Error = err
			p.printf("%s: %v", current, err)
			return nil, &PartialError{
				Applied: results,
				Failed:  current,
				Err:     err,
			}
		}
		p.printf("%s", current)
		results = append(results, current)
	}
	return results, nil
}

// runIndividually runs an individual migration, opening a new transaction unless the metadata of
// the migration opts out. The version table is updated with the same connection, and inside the
// same transaction when there is one.
func (p *Provider) runIndividually(
	ctx context.Context,
	conn *sql.Conn,
	m Migration,
	direction string,
) error {
	useTx, err := RunInTransaction(m)
	if err != nil {
		return err
	}
	if useTx {
		return p.beginTx(ctx, conn, func(tx *sql.Tx) error {
			return p.apply(ctx, tx, m, direction)
		})
	}
	return p.apply(ctx, conn, m, direction)
}

func (p *Provider) apply(ctx context.Context, db database.DBTxConn, m Migration, direction string) error {
	if direction == directionUp {
		if err := m.Up(ctx, db); err != nil {
			return err
		}
		return p.store.Insert(ctx, db, m.Version())
	}
	if err := m.Down(ctx, db); err != nil {
		return err
	}
	return p.store.Delete(ctx, db, m.Version())
}

// beginTx begins a transaction and runs the given function. If the function returns an error, the
// transaction is rolled back. Otherwise, the transaction is committed.
func (p *Provider) beginTx(
	ctx context.Context,
	conn *sql.Conn,
	fn func(tx *sql.Tx) error,
) (retErr error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			retErr = multierr.Append(retErr, tx.Rollback())
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// initialize locks the provider, acquires a dedicated connection and makes sure the version table
// exists. The returned cleanup function must always be called.
func (p *Provider) initialize(ctx context.Context) (*sql.Conn, func() error, error) {
	p.mu.Lock()
	conn, err := p.db.Conn(ctx)
	if err != nil {
		p.mu.Unlock()
		return nil, nil, err
	}
	cleanup := func() error {
		p.mu.Unlock()
		return conn.Close()
	}
	if err := p.store.CreateVersionTable(ctx, conn); err != nil {
		return nil, nil, multierr.Append(err, cleanup())
	}
	return conn, cleanup, nil
}

func (p *Provider) appliedVersions(
	ctx context.Context,
	conn *sql.Conn,
) (map[string]*database.ListMigrationsResult, error) {
	res, err := p.store.ListMigrations(ctx, conn)
	if err != nil {
		return nil, err
	}
	applied := make(map[string]*database.ListMigrationsResult, len(res))
	for _, r := range res {
		applied[r.Version] = r
	}
	return applied, nil
}

// pending returns the migrations that are not recorded in the version table, in ascending order.
func (p *Provider) pending(ctx context.Context, conn *sql.Conn) ([]Migration, error) {
	applied, err := p.appliedVersions(ctx, conn)
	if err != nil {
		return nil, err
	}
	var pending []Migration
	for _, m := range p.migrations {
		if _, ok := applied[m.Version()]; !ok {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

// current returns the applied migration with the highest version. Versions are compared in Go, as
// sources are sorted, so the database collation does not matter.
func (p *Provider) current(ctx context.Context, conn *sql.Conn) (Migration, error) {
	res, err := p.store.ListMigrations(ctx, conn)
	if err != nil {
		return nil, err
	}
	latest, ok := latestVersion(res)
	if !ok {
		return nil, ErrNoCurrentVersion
	}
	for _, m := range p.migrations {
		if m.Version() == latest {
			return m, nil
		}
	}
	return nil, fmt.Errorf("applied migration %s not found among known migrations", latest)
}

func latestVersion(res []*database.ListMigrationsResult) (string, bool) {
	if len(res) == 0 {
		return "", false
	}
	latest := res[0].Version
	for _, r := range res[1:] {
		if r.Version > latest {
			latest = r.Version
		}
	}
	return latest, true
}

func (p *Provider) printf(format string, args ...any) {
	if p.cfg.verbose {
		p.cfg.logger.Printf(format, args...)
	}
}
