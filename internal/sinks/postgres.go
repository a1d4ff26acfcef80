package sinks

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed 001_create_report_rows.sql
var migrationSQL string

// Postgres writes the report into a report_rows table. Rows are buffered
// and inserted in a single transaction on Finalize: the previous report for
// the same year and language is replaced, and a mid-write failure rolls
// everything back.
type Postgres struct {
	pool     *pgxpool.Pool
	year     int
	language string
	rows     [][]string
	logger   *slog.Logger
}

// NewPostgres connects to the configured database and applies the schema
// migration.
func NewPostgres(ctx context.Context, opts Options) (*Postgres, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg := opts.Postgres
	if cfg.Port == 0 {
		cfg.Port = 5432
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, migrationSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("applying report_rows migration: %w", err)
	}

	logger.Info("postgres sink initialized", "host", cfg.Host, "database", cfg.Database)

	return &Postgres{
		pool:     pool,
		year:     opts.ReportYear,
		language: opts.Language,
		logger:   logger,
	}, nil
}

// WriteHeader is a no-op: the table schema is the header.
func (p *Postgres) WriteHeader(_ context.Context, _ []string) error {
	return nil
}

func (p *Postgres) WriteRow(_ context.Context, values []string) error {
	if len(values) != 11 {
		return fmt.Errorf("expected 11 row values, got %d", len(values))
	}
	p.rows = append(p.rows, values)
	return nil
}

// Finalize replaces this report's rows in one transaction.
func (p *Postgres) Finalize(ctx context.Context) error {
	defer p.pool.Close()

	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		"DELETE FROM report_rows WHERE report_year = $1 AND language = $2",
		p.year, p.language,
	); err != nil {
		return fmt.Errorf("clearing previous report: %w", err)
	}

	const insert = `
		INSERT INTO report_rows (
			report_year, language, report_date, location, purpose,
			duration_hrs, distance_km, parking, hotel, transport, meal, fee, file_paths
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	for _, row := range p.rows {
		args := make([]any, 0, 13)
		args = append(args, p.year, p.language)
		for _, v := range row {
			args = append(args, v)
		}
		if _, err := tx.Exec(ctx, insert, args...); err != nil {
			return fmt.Errorf("inserting report row for %s: %w", row[0], err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing report: %w", err)
	}

	p.logger.Info("report written", "table", "report_rows", "rows", len(p.rows))
	return nil
}
