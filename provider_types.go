package dirmigrate

import (
	"fmt"
	"time"
)

const (
	directionUp   = "up"
	directionDown = "down"
)

// MigrationResult is the result of a single migration operation.
//
// Note, the caller is responsible for checking the Error field for any errors that occurred while
// running the migration. If the Error field is not nil, the migration failed.
type MigrationResult struct {
	Migration Migration
	Duration  time.Duration
	// Direction is "up" or "down".
	Direction string
	// Error is any error that occurred while running the migration.
	Error error
}

func (r *MigrationResult) String() string {
	state := "OK"
	if r.Error != nil {
		state = "FAILED"
	}
	return fmt.Sprintf("%-6s %-4s %s (%s)",
		state,
		r.Direction,
		Name(r.Migration),
		truncateDuration(r.Duration),
	)
}

// State represents the state of a migration.
type State string

const (
	// StatePending represents a migration that is on the filesystem, but not in the database.
	StatePending State = "pending"
	// StateApplied represents a migration that is in BOTH the database and on the filesystem.
	StateApplied State = "applied"
)

// MigrationStatus represents the status of a single migration.
type MigrationStatus struct {
	// State is the state of the migration.
	State State
	// AppliedAt is the time the migration was applied. Only set if state is [StateApplied].
	AppliedAt time.Time
	// Migration is the migration the status describes.
	Migration Migration
}

func truncateDuration(d time.Duration) time.Duration {
	for _, v := range []time.Duration{
		time.Second,
		time.Millisecond,
		time.Microsecond,
	} {
		if d > v {
			return d.Round(v / time.Duration(100))
		}
	}
	return d
}
