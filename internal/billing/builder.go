// Package billing assembles persistable billing records from meter readings,
// tariff selections, and the acting user.
package billing

import (
	"errors"
	"time"

	"waterworks-backend/internal/domain"
	"waterworks-backend/internal/tariff"
)

var ErrIncompleteInput = errors.New("missing required billing fields")

// Flat charge applied when the meter could not be read.
const defectCharge = 75.00

// BuildInput carries everything a billing submission provides. Readings are
// the raw numeric strings from the caller; identity fields are validated but
// not persisted by the builder itself.
type BuildInput struct {
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
	PaymentStatus    string
	Actor            domain.Actor
}

// Builder turns submissions into billing records. Now is swappable for tests.
type Builder struct {
	Now func() time.Time
}

// Build validates the input, runs the tariff computation, and returns the
// record ready for persistence. Validation failures surface before any
// arithmetic; a defect status bypasses the tariff entirely and emits the
// flat penalty record.
func (b Builder) Build(in BuildInput) (domain.BillingRecord, error) {
	if in.Month == "" || in.Year == "" || in.ConsumerName == "" || in.Location == "" || in.WSIN == "" {
		return domain.BillingRecord{}, ErrIncompleteInput
	}

	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	schedule := in.FeeSchedule
	if schedule == "" {
		schedule = domain.FeeLatest
	}

	if in.Status == domain.ReadingDefect {
		return domain.BillingRecord{
			Year:              in.Year,
			Month:             in.Month,
			BillingPeriod:     BillingPeriod(in.Month, in.Year),
			Status:            domain.ReadingDefect,
			PreviousReading:   "0",
			PresentReading:    "0",
			WaterConsumption:  "0",
			WaterCharge:       tariff.FormatAmount(defectCharge),
			Surcharge:         tariff.FormatAmount(0),
			OverallTotal:      tariff.FormatAmount(defectCharge),
			IncludeSurcharge:  false,
			CommercialFeeType: schedule,
			PaymentStatus:     ResolvePaymentStatus(in.PaymentStatus, defectCharge, 0),
			IsDefect:          true,
			ProcessedBy:       in.Actor.Name(),
			CreatedAt:         now(),
		}, nil
	}

	consumption, err := tariff.Consumption(in.PreviousReading, in.PresentReading)
	if err != nil {
		return domain.BillingRecord{}, err
	}

	var charge float64
	if in.ServiceType == domain.ServiceCommercial {
		charge, err = tariff.CommercialCharge(consumption, schedule)
		if err != nil {
			return domain.BillingRecord{}, err
		}
	} else {
		charge = tariff.ResidentialCharge(consumption)
	}

	surcharge := tariff.Surcharge(charge, in.IncludeSurcharge)
	total := tariff.Total(charge, surcharge)

	status := in.Status
	if status == "" {
		status = domain.ReadingNormal
	}

	return domain.BillingRecord{
		Year:              in.Year,
		Month:             in.Month,
		BillingPeriod:     BillingPeriod(in.Month, in.Year),
		Status:            status,
		PreviousReading:   in.PreviousReading,
		PresentReading:    in.PresentReading,
		WaterConsumption:  tariff.FormatAmount(consumption),
		WaterCharge:       tariff.FormatAmount(charge),
		Surcharge:         tariff.FormatAmount(surcharge),
		OverallTotal:      tariff.FormatAmount(total),
		IncludeSurcharge:  in.IncludeSurcharge,
		CommercialFeeType: schedule,
		PaymentStatus:     ResolvePaymentStatus(in.PaymentStatus, total, surcharge),
		IsDefect:          false,
		ProcessedBy:       in.Actor.Name(),
		CreatedAt:         now(),
	}, nil
}
