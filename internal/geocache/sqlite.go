package geocache

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/tenant-mapper/pkg/geocode"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS geocode_cache (
	query     TEXT PRIMARY KEY,
	latitude  REAL,
	longitude REAL,
	matched   INTEGER NOT NULL DEFAULT 0,
	cached_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

// NewSQLite opens (or creates) a SQLite cache at the given path and
// configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "geocache: open sqlite")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck,gosec
			return nil, eris.Wrapf(err, "geocache: exec %s", pragma)
		}
	}
	if _, err := db.Exec(sqliteMigration); err != nil {
		db.Close() //nolint:errcheck,gosec
		return nil, eris.Wrap(err, "geocache: migrate")
	}
	return &SQLiteStore{db: db}, nil
}

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context) (map[string]geocode.Result, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT query, latitude, longitude, matched FROM geocode_cache`)
	if err != nil {
		return nil, eris.Wrap(err, "geocache: load")
	}
	defer rows.Close() //nolint:errcheck

	out := make(map[string]geocode.Result)
	for rows.Next() {
		var query string
		var lat, lon sql.NullFloat64
		var matched bool
		if err := rows.Scan(&query, &lat, &lon, &matched); err != nil {
			return nil, eris.Wrap(err, "geocache: scan row")
		}
		out[query] = geocode.Result{
			Latitude:  lat.Float64,
			Longitude: lon.Float64,
			Matched:   matched,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "geocache: iterate rows")
	}
	return out, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, query string, r geocode.Result) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO geocode_cache (query, latitude, longitude, matched, cached_at)
		VALUES (?, ?, ?, ?, datetime('now'))
		ON CONFLICT (query) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			matched = excluded.matched,
			cached_at = excluded.cached_at`,
		query, r.Latitude, r.Longitude, r.Matched,
	)
	return eris.Wrap(err, "geocache: save")
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return eris.Wrap(s.db.Close(), "geocache: close sqlite")
}
