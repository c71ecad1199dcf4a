package service

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"waterworks-backend/internal/domain"
	"waterworks-backend/internal/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeConsumerStore is an in-memory ConsumerStore. Error fields force
// specific failures per method.
type fakeConsumerStore struct {
	consumers []domain.Consumer
	nextID    int64

	listErr    error
	maxWSINErr error
	createErr  error
	created    int
}

func (f *fakeConsumerStore) List(ctx context.Context) ([]domain.Consumer, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Consumer(nil), f.consumers...), nil
}

func (f *fakeConsumerStore) Get(ctx context.Context, id int64) (*domain.Consumer, error) {
	for i := range f.consumers {
		if f.consumers[i].ID == id {
			c := f.consumers[i]
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeConsumerStore) MaxWSIN(ctx context.Context, location string) (int, error) {
	if f.maxWSINErr != nil {
		return 0, f.maxWSINErr
	}
	max := 0
	for _, c := range f.consumers {
		if c.Location != location {
			continue
		}
		if n := wsinValue(c.WSIN); n > max {
			max = n
		}
	}
	return max, nil
}

func wsinValue(wsin string) int {
	n := 0
	for _, r := range wsin {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func (f *fakeConsumerStore) FindByIdentity(ctx context.Context, wsin, location string) (*domain.Consumer, error) {
	for i := range f.consumers {
		if f.consumers[i].WSIN == wsin && f.consumers[i].Location == location {
			c := f.consumers[i]
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeConsumerStore) Create(ctx context.Context, c domain.Consumer) (*domain.Consumer, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	c.ID = f.nextID
	f.consumers = append(f.consumers, c)
	f.created++
	return &c, nil
}

// fakeRecordStore is an in-memory BillingRecordStore.
type fakeRecordStore struct {
	records   []domain.BillingRecord
	appendErr error
}

func (f *fakeRecordStore) Append(ctx context.Context, consumerID int64, rec domain.BillingRecord) (*domain.BillingRecord, error) {
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	rec.ID = int64(len(f.records) + 1)
	rec.ConsumerID = consumerID
	f.records = append(f.records, rec)
	return &rec, nil
}

func (f *fakeRecordStore) ListByConsumer(ctx context.Context, consumerID int64) ([]domain.BillingRecord, error) {
	var out []domain.BillingRecord
	for _, rec := range f.records {
		if rec.ConsumerID == consumerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRecordStore) ListRecent(ctx context.Context, limit int) ([]domain.ConsumerRecord, error) {
	var out []domain.ConsumerRecord
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, domain.ConsumerRecord{Record: f.records[i]})
	}
	return out, nil
}

// fakeUserStore serves role lookups.
type fakeUserStore struct {
	users  map[int64]domain.UserAccount
	getErr error
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*domain.UserAccount, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

var errStore = errors.New("store unavailable")
