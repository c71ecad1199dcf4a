package repository

import (
	"context"
	"errors"

	"waterworks-backend/internal/db"
	"waterworks-backend/internal/domain"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	DB *db.Postgres
}

type CreateUserParams struct {
	Email        string
	FullName     string
	Role         domain.UserRole
	PasswordHash *string
	CreatedBy    string
}

func (r UserRepository) Create(ctx context.Context, p CreateUserParams) (*domain.UserAccount, error) {
	query := `
		INSERT INTO users (email, full_name, role, password_hash, created_at, created_by)
		VALUES ($1,$2,$3,$4, now(), $5)
		RETURNING id, email, full_name, role, password_hash, created_at, created_by
	`
	row := r.DB.Pool.QueryRow(ctx, query, p.Email, p.FullName, p.Role, p.PasswordHash, p.CreatedBy)
	return scanUser(row)
}

func (r UserRepository) GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	query := `
		SELECT id, email, full_name, role, password_hash, created_at, created_by
		FROM users
		WHERE email=$1
	`
	row := r.DB.Pool.QueryRow(ctx, query, email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (*domain.UserAccount, error) {
	query := `
		SELECT id, email, full_name, role, password_hash, created_at, created_by
		FROM users
		WHERE id=$1
	`
	row := r.DB.Pool.QueryRow(ctx, query, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// List returns all accounts, newest first.
func (r UserRepository) List(ctx context.Context) ([]domain.UserAccount, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, email, full_name, role, password_hash, created_at, created_by
		FROM users
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.UserAccount
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	return items, rows.Err()
}

func scanUser(row pgx.Row) (*domain.UserAccount, error) {
	var (
		u    domain.UserAccount
		role string
	)
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FullName,
		&role,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.CreatedBy,
	); err != nil {
		return nil, err
	}
	u.Role = domain.UserRole(role)
	return &u, nil
}

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// IsDuplicate detects unique constraint violation.
func IsDuplicate(err error) bool {
	return db.IsUniqueViolation(err)
}
