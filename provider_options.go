package dirmigrate

import (
	"errors"
	"fmt"

	"github.com/pressly/dirmigrate/database"
)

const (
	// DefaultTablename is the version table used when [WithTableName] is not given.
	DefaultTablename = "__schema_migrations"
)

// ProviderOption is a configuration option for a [Provider].
type ProviderOption interface {
	apply(*config) error
}

// WithTableName sets the name of the database table used to track history of applied migrations.
// Ignored when a custom store is supplied with [WithStore].
//
// If WithTableName is not called, the default value is "__schema_migrations".
func WithTableName(name string) ProviderOption {
	return configFunc(func(c *config) error {
		if c.tableName != "" {
			return fmt.Errorf("table already set to %q", c.tableName)
		}
		if name == "" {
			return errors.New("table must not be empty")
		}
		c.tableName = name
		return nil
	})
}

// WithStore sets a custom store. Use it with [database.DialectCustom].
func WithStore(store database.Store) ProviderOption {
	return configFunc(func(c *config) error {
		if c.store != nil {
			return fmt.Errorf("store already set: %T", c.store)
		}
		if store == nil {
			return errors.New("store must not be nil")
		}
		if store.Tablename() == "" {
			return errors.New("store implementation must set the table name")
		}
		c.store = store
		return nil
	})
}

// WithVerbose enables verbose logging.
func WithVerbose(b bool) ProviderOption {
	return configFunc(func(c *config) error {
		c.verbose = b
		return nil
	})
}

// WithLogger sets the logger used for verbose output. Defaults to the standard library logger.
func WithLogger(l Logger) ProviderOption {
	return configFunc(func(c *config) error {
		if l == nil {
			return errors.New("logger must not be nil")
		}
		c.logger = l
		return nil
	})
}

// WithRecognizer registers a [Recognizer] consulted before the directory format when collecting
// migrations from the filesystem.
func WithRecognizer(r Recognizer) ProviderOption {
	return configFunc(func(c *config) error {
		if r == nil {
			return errors.New("recognizer must not be nil")
		}
		c.recognizers = append(c.recognizers, r)
		return nil
	})
}

// WithMigrations adds migrations that do not live on the filesystem, such as those built with
// [NewGoMigration]. Their versions must not collide with collected migrations.
func WithMigrations(migrations ...Migration) ProviderOption {
	return configFunc(func(c *config) error {
		for _, m := range migrations {
			if m == nil {
				return errors.New("migration must not be nil")
			}
			if m.Version() == "" {
				return errors.New("migration version must not be empty")
			}
		}
		c.migrations = append(c.migrations, migrations...)
		return nil
	})
}

type config struct {
	tableName   string
	store       database.Store
	verbose     bool
	logger      Logger
	recognizers []Recognizer
	migrations  []Migration
}

type configFunc func(*config) error

func (f configFunc) apply(cfg *config) error {
	return f(cfg)
}
