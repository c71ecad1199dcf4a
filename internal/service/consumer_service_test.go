package service

import (
	"context"
	"testing"

	"waterworks-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNextWSIN(t *testing.T) {
	t.Run("one past the highest in a location", func(t *testing.T) {
		store := &fakeConsumerStore{consumers: []domain.Consumer{
			{ID: 1, WSIN: "3", Location: "CENTRAL"},
			{ID: 2, WSIN: "1", Location: "CENTRAL"},
			{ID: 3, WSIN: "5", Location: "CENTRAL"},
			{ID: 4, WSIN: "9", Location: "HIGHWAY"},
		}}
		svc := ConsumerService{Consumers: store, Logger: discardLogger()}

		assert.Equal(t, "6", svc.NextWSIN(context.Background(), "CENTRAL", nil))
	})

	t.Run("empty location starts at one", func(t *testing.T) {
		store := &fakeConsumerStore{}
		svc := ConsumerService{Consumers: store, Logger: discardLogger()}

		assert.Equal(t, "1", svc.NextWSIN(context.Background(), "CENTRAL", nil))
	})

	t.Run("store failure degrades to local scan", func(t *testing.T) {
		store := &fakeConsumerStore{maxWSINErr: errStore}
		svc := ConsumerService{Consumers: store, Logger: discardLogger()}

		known := []domain.Consumer{
			{WSIN: "4", Location: "CENTRAL"},
			{WSIN: "12", Location: "CENTRAL"},
			{WSIN: "99", Location: "HIGHWAY"},
			{WSIN: "not-a-number", Location: "CENTRAL"},
		}
		assert.Equal(t, "13", svc.NextWSIN(context.Background(), "CENTRAL", known))
	})

	t.Run("store failure with no known consumers", func(t *testing.T) {
		store := &fakeConsumerStore{maxWSINErr: errStore}
		svc := ConsumerService{Consumers: store, Logger: discardLogger()}

		assert.Equal(t, "1", svc.NextWSIN(context.Background(), "CENTRAL", nil))
	})
}

func TestFind(t *testing.T) {
	store := &fakeConsumerStore{consumers: []domain.Consumer{
		{ID: 1, ConsumerName: "Juan Dela Cruz", Location: "CENTRAL"},
		{ID: 2, ConsumerName: "Maria Santos", Location: "CENTRAL"},
		{ID: 3, ConsumerName: "Juanita Reyes", Location: "HIGHWAY"},
	}}
	svc := ConsumerService{Consumers: store, Logger: discardLogger()}

	t.Run("no filters returns all", func(t *testing.T) {
		items, err := svc.Find(context.Background(), "", "")
		assert.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("name is a case-insensitive substring", func(t *testing.T) {
		items, err := svc.Find(context.Background(), "juan", "")
		assert.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("location is exact", func(t *testing.T) {
		items, err := svc.Find(context.Background(), "", "HIGHWAY")
		assert.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, "Juanita Reyes", items[0].ConsumerName)
	})

	t.Run("both filters combine", func(t *testing.T) {
		items, err := svc.Find(context.Background(), "juan", "CENTRAL")
		assert.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, "Juan Dela Cruz", items[0].ConsumerName)
	})
}

func TestFindOrCreate(t *testing.T) {
	t.Run("existing identity is reused", func(t *testing.T) {
		store := &fakeConsumerStore{consumers: []domain.Consumer{
			{ID: 7, WSIN: "4", Location: "CENTRAL", ConsumerName: "Juan Dela Cruz"},
		}, nextID: 7}
		svc := ConsumerService{Consumers: store, Logger: discardLogger()}

		c, err := svc.FindOrCreate(context.Background(), "4", "CENTRAL", ConsumerDefaults{ConsumerName: "Someone Else"})
		assert.NoError(t, err)
		assert.Equal(t, int64(7), c.ID)
		assert.Equal(t, "Juan Dela Cruz", c.ConsumerName)
		assert.Equal(t, 0, store.created)
	})

	t.Run("missing identity is created with defaults", func(t *testing.T) {
		store := &fakeConsumerStore{}
		svc := ConsumerService{Consumers: store, Logger: discardLogger()}

		c, err := svc.FindOrCreate(context.Background(), "4", "CENTRAL", ConsumerDefaults{
			ConsumerName: "Maria Santos",
			Actor:        domain.Actor{Email: "clerk@example.com"},
		})
		assert.NoError(t, err)
		assert.Equal(t, "4", c.WSIN)
		assert.Equal(t, domain.ServiceResidential, c.ServiceType)
		assert.Equal(t, domain.ConsumerNew, c.ConsumerType)
		assert.Equal(t, "clerk@example.com", c.CreatedBy)
		assert.Equal(t, "Unknown User", c.CreatedByName)
	})

	t.Run("display name is recorded when present", func(t *testing.T) {
		store := &fakeConsumerStore{}
		svc := ConsumerService{Consumers: store, Logger: discardLogger()}

		c, err := svc.FindOrCreate(context.Background(), "5", "CENTRAL", ConsumerDefaults{
			ConsumerName: "Maria Santos",
			Actor:        domain.Actor{Email: "clerk@example.com", DisplayName: "Clerk One"},
		})
		assert.NoError(t, err)
		assert.Equal(t, "Clerk One", c.CreatedByName)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		store := &fakeConsumerStore{createErr: errStore}
		svc := ConsumerService{Consumers: store, Logger: discardLogger()}

		_, err := svc.FindOrCreate(context.Background(), "4", "CENTRAL", ConsumerDefaults{ConsumerName: "X"})
		assert.ErrorIs(t, err, errStore)
	})
}
