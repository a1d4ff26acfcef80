package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/maxonary/LLM-Invoice-Sorter/pkg/api"
)

const schema = `
CREATE TABLE IF NOT EXISTS inference_cache (
	key         TEXT PRIMARY KEY,
	purpose     TEXT NOT NULL,
	distance_km REAL NOT NULL,
	type        TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
)`

// sqliteStore implements Store on a single-file SQLite database. The upsert
// is a single statement, so a crash mid-write never corrupts previously
// stored entries.
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the cache database at path with WAL
// mode enabled.
func OpenSQLite(ctx context.Context, path string) (Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache schema: %w", err)
	}

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Get(ctx context.Context, key string) (api.InferenceResult, bool, error) {
	var res api.InferenceResult
	err := s.db.QueryRowContext(ctx,
		"SELECT purpose, distance_km, type FROM inference_cache WHERE key = ?", key,
	).Scan(&res.Purpose, &res.DistanceKM, &res.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return api.InferenceResult{}, false, nil
	}
	if err != nil {
		return api.InferenceResult{}, false, fmt.Errorf("reading cache entry: %w", err)
	}
	return res, true, nil
}

func (s *sqliteStore) Put(ctx context.Context, key string, res api.InferenceResult) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inference_cache (key, purpose, distance_km, type, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			purpose = excluded.purpose,
			distance_km = excluded.distance_km,
			type = excluded.type`,
		key, res.Purpose, res.DistanceKM, res.Type, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
