package repository

import (
	"context"
	"errors"

	"waterworks-backend/internal/db"
	"waterworks-backend/internal/domain"
	"github.com/jackc/pgx/v5"
)

type ConsumerRepository struct {
	DB *db.Postgres
}

// List returns every consumer, newest first.
func (r ConsumerRepository) List(ctx context.Context) ([]domain.Consumer, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, wsin, consumer_name, location, service_type, consumer_type, created_at, created_by, created_by_name
		FROM consumers
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanConsumers(rows)
}

// MaxWSIN returns the highest numeric WSIN already assigned at a location,
// or zero when the location has no consumers. WSINs are stored as strings
// but allocated as integers, so the comparison casts.
func (r ConsumerRepository) MaxWSIN(ctx context.Context, location string) (int, error) {
	var max int
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT COALESCE(MAX(wsin::int), 0)
		FROM consumers
		WHERE location=$1
	`, location).Scan(&max)
	if err != nil {
		return 0, err
	}
	return max, nil
}

// FindByIdentity looks up the consumer with an exact (wsin, location) pair.
func (r ConsumerRepository) FindByIdentity(ctx context.Context, wsin, location string) (*domain.Consumer, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, wsin, consumer_name, location, service_type, consumer_type, created_at, created_by, created_by_name
		FROM consumers
		WHERE wsin=$1 AND location=$2
	`, wsin, location)
	c, err := scanConsumer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r ConsumerRepository) Get(ctx context.Context, id int64) (*domain.Consumer, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, wsin, consumer_name, location, service_type, consumer_type, created_at, created_by, created_by_name
		FROM consumers
		WHERE id=$1
	`, id)
	c, err := scanConsumer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// Create inserts a consumer identity record. The (location, wsin) unique
// index rejects duplicate identities; callers check with IsDuplicate.
func (r ConsumerRepository) Create(ctx context.Context, c domain.Consumer) (*domain.Consumer, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO consumers (wsin, consumer_name, location, service_type, consumer_type, created_at, created_by, created_by_name)
		VALUES ($1,$2,$3,$4,$5, now(), $6, $7)
		RETURNING id, wsin, consumer_name, location, service_type, consumer_type, created_at, created_by, created_by_name
	`, c.WSIN, c.ConsumerName, c.Location, c.ServiceType, c.ConsumerType, c.CreatedBy, c.CreatedByName)
	return scanConsumer(row)
}

func scanConsumer(row pgx.Row) (*domain.Consumer, error) {
	var (
		c            domain.Consumer
		serviceType  string
		consumerType string
	)
	if err := row.Scan(
		&c.ID,
		&c.WSIN,
		&c.ConsumerName,
		&c.Location,
		&serviceType,
		&consumerType,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.CreatedByName,
	); err != nil {
		return nil, err
	}
	c.ServiceType = domain.ServiceType(serviceType)
	c.ConsumerType = domain.ConsumerType(consumerType)
	return &c, nil
}

func scanConsumers(rows pgx.Rows) ([]domain.Consumer, error) {
	var items []domain.Consumer
	for rows.Next() {
		c, err := scanConsumer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}
