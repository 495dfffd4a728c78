// Package geocache persists geocode results across runs so unchanged
// queries never hit the provider again. Backends: SQLite for single-machine
// use, Postgres where a shared database already exists. Stores load into
// the run's in-memory cache at startup and receive write-through saves as
// the batch progresses.
package geocache

import (
	"context"

	"github.com/sells-group/tenant-mapper/pkg/geocode"
)

// Store is a persistent geocode cache backend.
type Store interface {
	// Load returns every cached query with its result, including
	// non-matches.
	Load(ctx context.Context) (map[string]geocode.Result, error)

	// Save upserts one query's result.
	Save(ctx context.Context, query string, r geocode.Result) error

	// Close releases the underlying connection.
	Close() error
}
