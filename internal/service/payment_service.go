package service

import (
	"context"
	"errors"
	"log/slog"

	"waterworks-backend/internal/billing"
	"waterworks-backend/internal/domain"
	"waterworks-backend/internal/metrics"
	"waterworks-backend/internal/ports"
	"waterworks-backend/internal/tariff"
)

var ErrConsumerNotSelected = errors.New("existing consumer must be selected")

// PaymentService handles interactive billing submissions. Unlike import,
// this path always recomputes charges from the readings.
type PaymentService struct {
	Consumers ports.ConsumerStore
	Records   ports.BillingRecordStore
	Builder   billing.Builder
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
}

type SubmitInput struct {
	ConsumerType     domain.ConsumerType
	ConsumerID       int64 // required for old consumers
	ConsumerName     string
	Location         string
	WSIN             string
	ServiceType      domain.ServiceType
	FeeSchedule      domain.FeeSchedule
	Month            string
	Year             string
	Status           domain.ReadingStatus
	PreviousReading  string
	PresentReading   string
	IncludeSurcharge bool
}

type SubmitResult struct {
	Consumer domain.Consumer
	Record   domain.BillingRecord
}

// Preview computes the charge breakdown without touching the store. This is
// the form's Calculate step.
type Preview struct {
	WaterConsumption string
	WaterCharge      string
	Surcharge        string
	OverallTotal     string
}

func (s PaymentService) Preview(in SubmitInput) (Preview, error) {
	consumption, err := tariff.Consumption(in.PreviousReading, in.PresentReading)
	if err != nil {
		return Preview{}, err
	}

	var charge float64
	if in.ServiceType == domain.ServiceCommercial {
		schedule := in.FeeSchedule
		if schedule == "" {
			schedule = domain.FeeLatest
		}
		charge, err = tariff.CommercialCharge(consumption, schedule)
		if err != nil {
			return Preview{}, err
		}
	} else {
		charge = tariff.ResidentialCharge(consumption)
	}

	surcharge := tariff.Surcharge(charge, in.IncludeSurcharge)
	return Preview{
		WaterConsumption: tariff.FormatAmount(consumption),
		WaterCharge:      tariff.FormatAmount(charge),
		Surcharge:        tariff.FormatAmount(surcharge),
		OverallTotal:     tariff.FormatAmount(tariff.Total(charge, surcharge)),
	}, nil
}

// Submit validates and persists one billing event. Validation happens before
// any write, so a bad submission leaves nothing behind. A new consumer is
// created with the submission; an old one must already be selected by id.
// The record append is the last step, and a store failure fails the whole
// submission.
func (s PaymentService) Submit(ctx context.Context, in SubmitInput, actor domain.Actor) (*SubmitResult, error) {
	record, err := s.Builder.Build(billing.BuildInput{
		ConsumerName:     in.ConsumerName,
		Location:         in.Location,
		WSIN:             in.WSIN,
		ServiceType:      in.ServiceType,
		FeeSchedule:      in.FeeSchedule,
		Month:            in.Month,
		Year:             in.Year,
		Status:           in.Status,
		PreviousReading:  in.PreviousReading,
		PresentReading:   in.PresentReading,
		IncludeSurcharge: in.IncludeSurcharge,
		Actor:            actor,
	})
	if err != nil {
		return nil, err
	}

	var consumer *domain.Consumer
	if in.ConsumerType == domain.ConsumerOld {
		if in.ConsumerID == 0 {
			return nil, ErrConsumerNotSelected
		}
		consumer, err = s.Consumers.Get(ctx, in.ConsumerID)
		if err != nil {
			return nil, err
		}
	} else {
		createdByName := actor.DisplayName
		if createdByName == "" {
			createdByName = "Unknown User"
		}
		consumer, err = s.Consumers.Create(ctx, domain.Consumer{
			WSIN:          in.WSIN,
			ConsumerName:  in.ConsumerName,
			Location:      in.Location,
			ServiceType:   in.ServiceType,
			ConsumerType:  domain.ConsumerNew,
			CreatedBy:     actor.Email,
			CreatedByName: createdByName,
		})
		if err != nil {
			return nil, err
		}
	}

	saved, err := s.Records.Append(ctx, consumer.ID, record)
	if err != nil {
		return nil, err
	}

	if s.Metrics != nil {
		s.Metrics.SubmissionsTotal.WithLabelValues(string(saved.Status)).Inc()
	}
	s.Logger.Info("billing record created",
		"consumer", consumer.ID,
		"wsin", consumer.WSIN,
		"location", consumer.Location,
		"period", saved.BillingPeriod,
		"total", saved.OverallTotal,
		"defect", saved.IsDefect,
	)
	return &SubmitResult{Consumer: *consumer, Record: *saved}, nil
}
