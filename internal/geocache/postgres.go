package geocache

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/tenant-mapper/pkg/geocode"
)

// Pool is the subset of pgxpool.Pool the store needs; pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStore implements Store on a shared Postgres database.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS geocode_cache (
	query     TEXT PRIMARY KEY,
	latitude  DOUBLE PRECISION,
	longitude DOUBLE PRECISION,
	matched   BOOLEAN NOT NULL DEFAULT false,
	cached_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// NewPostgres connects a pool to the given database and ensures the cache
// table exists.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "geocache: parse postgres config")
	}
	cfg.MaxConns = 2
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "geocache: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "geocache: ping")
	}

	s := &PostgresStore{pool: pool, closeFn: pool.Close}
	if _, err := pool.Exec(ctx, postgresMigration); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "geocache: migrate")
	}
	return s, nil
}

// NewPostgresStore wraps an existing pool without owning its lifecycle.
func NewPostgresStore(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Load implements Store.
func (s *PostgresStore) Load(ctx context.Context) (map[string]geocode.Result, error) {
	rows, err := s.pool.Query(ctx, `SELECT query, latitude, longitude, matched FROM geocode_cache`)
	if err != nil {
		return nil, eris.Wrap(err, "geocache: load")
	}
	defer rows.Close()

	out := make(map[string]geocode.Result)
	for rows.Next() {
		var query string
		var lat, lon *float64
		var matched bool
		if err := rows.Scan(&query, &lat, &lon, &matched); err != nil {
			return nil, eris.Wrap(err, "geocache: scan row")
		}
		r := geocode.Result{Matched: matched}
		if lat != nil {
			r.Latitude = *lat
		}
		if lon != nil {
			r.Longitude = *lon
		}
		out[query] = r
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "geocache: iterate rows")
	}
	return out, nil
}

// Save implements Store.
func (s *PostgresStore) Save(ctx context.Context, query string, r geocode.Result) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO geocode_cache (query, latitude, longitude, matched, cached_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (query) DO UPDATE SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			matched = EXCLUDED.matched,
			cached_at = now()`,
		query, r.Latitude, r.Longitude, r.Matched,
	)
	return eris.Wrap(err, "geocache: save")
}

// Close implements Store.
func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}
