package repository

import (
	"context"

	"waterworks-backend/internal/db"
	"waterworks-backend/internal/domain"
)

type LocationRepository struct {
	DB *db.Postgres
}

// List returns all service locations ordered alphabetically.
func (r LocationRepository) List(ctx context.Context) ([]domain.Location, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, name, created_at
		FROM locations
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Location
	for rows.Next() {
		var loc domain.Location
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, loc)
	}
	return items, rows.Err()
}
