package dirmigrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/pressly/dirmigrate/database"
	"go.uber.org/multierr"
)

// Provider applies the migrations found in a filesystem and records them in a version table.
//
// Unless otherwise specified, all methods on Provider are safe for concurrent use. Operations that
// touch the database are serialized.
type Provider struct {
	// mu protects all accesses to the provider and must be held when calling operations on the
	// database.
	mu sync.Mutex

	db         *sql.DB
	store      database.Store
	cfg        config
	migrations []Migration
}

// NewProvider returns a new Provider.
//
// The caller is responsible for matching the database dialect with the database/sql driver. For
// example, if the database dialect is "postgres", the database/sql driver could be
// github.com/jackc/pgx/v5/stdlib.
//
// Every migration directory at the root of fsys is collected. fsys may be nil when all migrations
// are supplied with [WithMigrations]. Most users will want os.DirFS("path/to/migrations"), but an
// embed.FS or an fs.Sub works just as well.
//
// See [ProviderOption] for more information on configuring the provider.
func NewProvider(dialect database.Dialect, db *sql.DB, fsys fs.FS, opts ...ProviderOption) (*Provider, error) {
	if db == nil {
		return nil, errors.New("db must not be nil")
	}
	var cfg config
	for _, opt := range opts {
		if err := opt.apply(&cfg); err != nil {
			return nil, err
		}
	}
	// Set defaults after applying user-supplied options so option funcs can check for empty values.
	if cfg.tableName == "" {
		cfg.tableName = DefaultTablename
	}
	if cfg.logger == nil {
		cfg.logger = NewStdLogger()
	}
	store := cfg.store
	switch {
	case store != nil && dialect != database.DialectCustom && dialect != "":
		return nil, fmt.Errorf("dialect must be %q or empty when using a custom store", database.DialectCustom)
	case store == nil:
		var err error
		store, err = database.NewStore(dialect, cfg.tableName)
		if err != nil {
			return nil, err
		}
	}
	var collected []Migration
	if fsys != nil {
		var loaderOpts []LoaderOption
		for _, r := range cfg.recognizers {
			loaderOpts = append(loaderOpts, WithLoaderRecognizer(r))
		}
		var err error
		collected, err = NewLoader(fsys, loaderOpts...).Collect(".")
		if err != nil {
			return nil, err
		}
	}
	migrations := make([]Migration, 0, len(collected)+len(cfg.migrations))
	migrations = append(migrations, collected...)
	migrations = append(migrations, cfg.migrations...)
	if err := sortAndCheck(migrations); err != nil {
		return nil, err
	}
	if len(migrations) == 0 {
		return nil, ErrNoMigrations
	}
	return &Provider{
		db:         db,
		store:      store,
		cfg:        cfg,
		migrations: migrations,
	}, nil
}

// ListSources returns all known migrations in ascending order by version.
func (p *Provider) ListSources() []Migration {
	sources := make([]Migration, len(p.migrations))
	copy(sources, p.migrations)
	return sources
}

// Status returns the status of all migrations, ordered by version in ascending order.
func (p *Provider) Status(ctx context.Context) (_ []*MigrationStatus, retErr error) {
	conn, cleanup, err := p.initialize(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		retErr = multierr.Append(retErr, cleanup())
	}()
	applied, err := p.appliedVersions(ctx, conn)
	if err != nil {
		return nil, err
	}
	status := make([]*MigrationStatus, 0, len(p.migrations))
	for _, m := range p.migrations {
		s := &MigrationStatus{
			State:     StatePending,
			Migration: m,
		}
		if res, ok := applied[m.Version()]; ok {
			s.State = StateApplied
			s.AppliedAt = res.RunOn
		}
		status = append(status, s)
	}
	return status, nil
}

// HasPending reports whether there is at least one migration that has not been applied.
func (p *Provider) HasPending(ctx context.Context) (_ bool, retErr error) {
	conn, cleanup, err := p.initialize(ctx)
	if err != nil {
		return false, err
	}
	defer func() {
		retErr = multierr.Append(retErr, cleanup())
	}()
	pending, err := p.pending(ctx, conn)
	if err != nil {
		return false, err
	}
	return len(pending) > 0, nil
}

// Up applies all pending migrations in ascending order by version. If there are no pending
// migrations, it returns an empty list with no error.
func (p *Provider) Up(ctx context.Context) ([]*MigrationResult, error) {
	return p.up(ctx, false)
}

// UpByOne applies the next pending migration. If there is none, it returns [ErrNoNextVersion].
func (p *Provider) UpByOne(ctx context.Context) (*MigrationResult, error) {
	res, err := p.up(ctx, true)
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, ErrNoNextVersion
	}
	return res[0], nil
}

// Down reverts the applied migration with the highest version. If nothing is applied, it returns
// [ErrNoCurrentVersion].
func (p *Provider) Down(ctx context.Context) (_ *MigrationResult, retErr error) {
	conn, cleanup, err := p.initialize(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		retErr = multierr.Append(retErr, cleanup())
	}()
	m, err := p.current(ctx, conn)
	if err != nil {
		return nil, err
	}
	res, err := p.runMigrations(ctx, conn, []Migration{m}, directionDown)
	if err != nil {
		return nil, err
	}
	return res[0], nil
}

// Redo reverts the applied migration with the highest version and applies it again.
func (p *Provider) Redo(ctx context.Context) (_ []*MigrationResult, retErr error) {
	conn, cleanup, err := p.initialize(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		retErr = multierr.Append(retErr, cleanup())
	}()
	m, err := p.current(ctx, conn)
	if err != nil {
		return nil, err
	}
	down, err := p.runMigrations(ctx, conn, []Migration{m}, directionDown)
	if err != nil {
		return nil, err
	}
	up, err := p.runMigrations(ctx, conn, []Migration{m}, directionUp)
	if err != nil {
		var partialErr *PartialError
		if errors.As(err, &partialErr) {
			partialErr.Applied = append(down, partialErr.Applied...)
		}
		return nil, err
	}
	return append(down, up...), nil
}

// Close closes the database connection.
func (p *Provider) Close() error {
	return p.db.Close()
}
