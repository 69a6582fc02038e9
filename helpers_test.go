package dirmigrate

import (
	"context"
	"database/sql"
	"testing/fstest"
)

// recordingExecer is a connection stub that remembers every batch it was asked to execute.
type recordingExecer struct {
	queries []string
	err     error
}

func (r *recordingExecer) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	r.queries = append(r.queries, query)
	if r.err != nil {
		return nil, r.err
	}
	return nil, nil
}

func file(s string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(s)}
}
