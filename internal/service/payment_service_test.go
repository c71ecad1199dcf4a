package service

import (
	"context"
	"testing"

	"waterworks-backend/internal/billing"
	"waterworks-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func newPaymentFixture() (PaymentService, *fakeConsumerStore, *fakeRecordStore) {
	consumers := &fakeConsumerStore{}
	records := &fakeRecordStore{}
	svc := PaymentService{
		Consumers: consumers,
		Records:   records,
		Builder:   billing.Builder{Now: importNow},
		Logger:    discardLogger(),
	}
	return svc, consumers, records
}

func validSubmitInput() SubmitInput {
	return SubmitInput{
		ConsumerType:    domain.ConsumerNew,
		ConsumerName:    "Juan Dela Cruz",
		Location:        "CENTRAL",
		WSIN:            "4",
		ServiceType:     domain.ServiceResidential,
		Month:           "March",
		Year:            "2024",
		PreviousReading: "10",
		PresentReading:  "15",
	}
}

func TestPreview(t *testing.T) {
	svc, _, _ := newPaymentFixture()

	t.Run("residential", func(t *testing.T) {
		p, err := svc.Preview(validSubmitInput())
		assert.NoError(t, err)
		assert.Equal(t, "5.00", p.WaterConsumption)
		assert.Equal(t, "62.50", p.WaterCharge)
		assert.Equal(t, "0.00", p.Surcharge)
		assert.Equal(t, "62.50", p.OverallTotal)
	})

	t.Run("commercial with surcharge", func(t *testing.T) {
		in := validSubmitInput()
		in.ServiceType = domain.ServiceCommercial
		in.PreviousReading = "0"
		in.PresentReading = "25"
		in.IncludeSurcharge = true

		p, err := svc.Preview(in)
		assert.NoError(t, err)
		assert.Equal(t, "500.00", p.WaterCharge)
		assert.Equal(t, "10.00", p.Surcharge)
		assert.Equal(t, "510.00", p.OverallTotal)
	})

	t.Run("invalid readings", func(t *testing.T) {
		in := validSubmitInput()
		in.PresentReading = "2"
		_, err := svc.Preview(in)
		assert.Error(t, err)
	})
}

func TestSubmit(t *testing.T) {
	actor := domain.Actor{UID: "1", Email: "clerk@example.com", DisplayName: "Clerk One"}

	t.Run("new consumer is created with the record", func(t *testing.T) {
		svc, consumers, records := newPaymentFixture()

		res, err := svc.Submit(context.Background(), validSubmitInput(), actor)
		assert.NoError(t, err)
		assert.Equal(t, 1, consumers.created)
		assert.Len(t, records.records, 1)
		assert.Equal(t, res.Consumer.ID, res.Record.ConsumerID)
		assert.Equal(t, domain.ConsumerNew, res.Consumer.ConsumerType)
		assert.Equal(t, "Clerk One", res.Record.ProcessedBy)
	})

	t.Run("old consumer must be selected", func(t *testing.T) {
		svc, _, _ := newPaymentFixture()

		in := validSubmitInput()
		in.ConsumerType = domain.ConsumerOld

		_, err := svc.Submit(context.Background(), in, actor)
		assert.ErrorIs(t, err, ErrConsumerNotSelected)
	})

	t.Run("old consumer is fetched by id", func(t *testing.T) {
		svc, consumers, records := newPaymentFixture()
		consumers.consumers = []domain.Consumer{{ID: 9, WSIN: "4", Location: "CENTRAL", ConsumerName: "Juan Dela Cruz"}}
		consumers.nextID = 9

		in := validSubmitInput()
		in.ConsumerType = domain.ConsumerOld
		in.ConsumerID = 9

		res, err := svc.Submit(context.Background(), in, actor)
		assert.NoError(t, err)
		assert.Equal(t, 0, consumers.created)
		assert.Equal(t, int64(9), res.Record.ConsumerID)
		assert.Len(t, records.records, 1)
	})

	t.Run("validation failure writes nothing", func(t *testing.T) {
		svc, consumers, records := newPaymentFixture()

		in := validSubmitInput()
		in.Month = ""

		_, err := svc.Submit(context.Background(), in, actor)
		assert.ErrorIs(t, err, billing.ErrIncompleteInput)
		assert.Equal(t, 0, consumers.created)
		assert.Empty(t, records.records)
	})

	t.Run("append failure fails the submission", func(t *testing.T) {
		svc, _, records := newPaymentFixture()
		records.appendErr = errStore

		_, err := svc.Submit(context.Background(), validSubmitInput(), actor)
		assert.ErrorIs(t, err, errStore)
	})
}
