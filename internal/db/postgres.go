package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"waterworks-backend/internal/config"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres wraps a pgx connection pool.
type Postgres struct {
	Pool *pgxpool.Pool
}

// New creates and verifies a pgx pool connection.
func New(ctx context.Context, cfg config.Config) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return &Postgres{Pool: pool}, nil
}

// Migrate brings up the schema. Consumers and billing records are
// insert-only tables; there are no updated_at or deleted_at columns
// because nothing ever mutates them.
func (p *Postgres) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS locations (
			id bigserial PRIMARY KEY,
			name text NOT NULL UNIQUE,
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id bigserial PRIMARY KEY,
			email text NOT NULL UNIQUE,
			full_name text NOT NULL DEFAULT '',
			role text NOT NULL DEFAULT 'user',
			password_hash text,
			created_at timestamptz NOT NULL DEFAULT now(),
			created_by text NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS consumers (
			id bigserial PRIMARY KEY,
			wsin text NOT NULL,
			consumer_name text NOT NULL,
			location text NOT NULL,
			service_type text NOT NULL DEFAULT 'residential',
			consumer_type text NOT NULL DEFAULT 'new',
			created_at timestamptz NOT NULL DEFAULT now(),
			created_by text NOT NULL DEFAULT '',
			created_by_name text NOT NULL DEFAULT '',
			UNIQUE (location, wsin)
		)`,
		`CREATE TABLE IF NOT EXISTS billing_records (
			id bigserial PRIMARY KEY,
			consumer_id bigint NOT NULL REFERENCES consumers(id),
			year text NOT NULL,
			month text NOT NULL,
			billing_period text NOT NULL,
			status text NOT NULL DEFAULT 'normal',
			previous_reading text NOT NULL DEFAULT '0',
			present_reading text NOT NULL DEFAULT '0',
			water_consumption text NOT NULL DEFAULT '0',
			water_charge text NOT NULL DEFAULT '0',
			surcharge text NOT NULL DEFAULT '0',
			overall_total text NOT NULL DEFAULT '0',
			include_surcharge boolean NOT NULL DEFAULT false,
			commercial_fee_type text NOT NULL DEFAULT 'latest',
			payment_status text NOT NULL DEFAULT 'unpaid',
			is_defect boolean NOT NULL DEFAULT false,
			processed_by text NOT NULL DEFAULT '',
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS billing_records_consumer_idx ON billing_records (consumer_id, created_at DESC)`,
	}

	for _, stmt := range stmts {
		if _, err := p.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (p *Postgres) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}

// Health checks the database connectivity.
func (p *Postgres) Health(ctx context.Context) error {
	return p.Pool.Ping(ctx)
}

// IsUniqueViolation checks for Postgres unique constraint errors.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
