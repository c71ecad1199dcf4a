// Package ports declares the store interfaces the domain services consume.
// The pgx repositories satisfy them in production; tests substitute fakes.
package ports

import (
	"context"

	"waterworks-backend/internal/domain"
)

// HealthChecker is used to probe dependencies.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// ConsumerStore is the keyed collection of consumer identity records.
// Consumers are insert-only; there is no update or delete.
type ConsumerStore interface {
	List(ctx context.Context) ([]domain.Consumer, error)
	Get(ctx context.Context, id int64) (*domain.Consumer, error)
	MaxWSIN(ctx context.Context, location string) (int, error)
	FindByIdentity(ctx context.Context, wsin, location string) (*domain.Consumer, error)
	Create(ctx context.Context, c domain.Consumer) (*domain.Consumer, error)
}

// BillingRecordStore is the per-consumer subordinate collection of billing
// events. Records are append-only.
type BillingRecordStore interface {
	Append(ctx context.Context, consumerID int64, rec domain.BillingRecord) (*domain.BillingRecord, error)
	ListByConsumer(ctx context.Context, consumerID int64) ([]domain.BillingRecord, error)
	ListRecent(ctx context.Context, limit int) ([]domain.ConsumerRecord, error)
}

// UserStore reads user accounts for role resolution.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.UserAccount, error)
}
