package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/dirmigrate/internal/dialectquery"
)

// Store is an interface that defines methods for recording applied migrations. By defining a Store
// interface, we can support multiple databases with consistent functionality.
//
// Each database dialect requires a specific implementation of this interface. A dialect represents
// a set of SQL statements specific to a particular database system.
type Store interface {
	// Tablename is the version table used to record applied migrations. Must not be empty.
	Tablename() string

	// CreateVersionTable creates the version table if it does not already exist.
	CreateVersionTable(ctx context.Context, db DBTxConn) error

	// Insert records version as applied.
	Insert(ctx context.Context, db DBTxConn, version string) error

	// Delete removes version from the version table.
	Delete(ctx context.Context, db DBTxConn, version string) error

	// ListMigrations retrieves all applied migrations sorted in descending order by version. If
	// there are no migrations, return empty slice with no error.
	ListMigrations(ctx context.Context, db DBTxConn) ([]*ListMigrationsResult, error)
}

// ListMigrationsResult is a single row of the version table.
type ListMigrationsResult struct {
	Version string
	RunOn   time.Time
}

// NewStore returns a new [Store] backed by the given dialect.
func NewStore(dialect Dialect, tablename string) (Store, error) {
	if tablename == "" {
		return nil, errors.New("tablename must not be empty")
	}
	if dialect == "" {
		return nil, errors.New("dialect must not be empty")
	}
	if dialect == DialectCustom {
		return nil, errors.New("dialect must not be custom")
	}
	querier, ok := queriers[dialect]
	if !ok {
		return nil, fmt.Errorf("unknown dialect: %q", dialect)
	}
	return &store{
		tablename: tablename,
		querier:   querier,
	}, nil
}

type store struct {
	tablename string
	querier   dialectquery.Querier
}

var _ Store = (*store)(nil)

func (s *store) Tablename() string {
	return s.tablename
}

func (s *store) CreateVersionTable(ctx context.Context, db DBTxConn) error {
	q := s.querier.CreateTable(s.tablename)
	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("failed to create version table %q: %w", s.tablename, err)
	}
	return nil
}

func (s *store) Insert(ctx context.Context, db DBTxConn, version string) error {
	q := s.querier.InsertVersion(s.tablename)
	if _, err := db.ExecContext(ctx, q, version); err != nil {
		return fmt.Errorf("failed to insert version %s: %w", version, err)
	}
	return nil
}

func (s *store) Delete(ctx context.Context, db DBTxConn, version string) error {
	q := s.querier.DeleteVersion(s.tablename)
	if _, err := db.ExecContext(ctx, q, version); err != nil {
		return fmt.Errorf("failed to delete version %s: %w", version, err)
	}
	return nil
}

func (s *store) ListMigrations(
	ctx context.Context,
	db DBTxConn,
) ([]*ListMigrationsResult, error) {
	q := s.querier.ListMigrations(s.tablename)
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	defer rows.Close()

	var migrations []*ListMigrationsResult
	for rows.Next() {
		var (
			result ListMigrationsResult
			runOn  timestamp
		)
		if err := rows.Scan(&result.Version, &runOn); err != nil {
			return nil, fmt.Errorf("failed to scan list migrations result: %w", err)
		}
		result.RunOn = runOn.Time
		migrations = append(migrations, &result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return migrations, nil
}
