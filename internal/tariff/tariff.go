// Package tariff computes water charges from meter readings. All functions
// are pure; monetary values stay unrounded floats until FormatAmount renders
// them for persistence.
package tariff

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"waterworks-backend/internal/domain"
)

var ErrInvalidReading = errors.New("invalid meter reading")

// Consumption parses and validates a reading pair and returns the consumed
// volume in cubic meters. Both readings must be finite, non-negative numbers
// and the present reading may not be below the previous one.
func Consumption(previous, present string) (float64, error) {
	prev, err := parseReading(previous)
	if err != nil {
		return 0, err
	}
	curr, err := parseReading(present)
	if err != nil {
		return 0, err
	}
	if curr < prev {
		return 0, ErrInvalidReading
	}
	return curr - prev, nil
}

func parseReading(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, ErrInvalidReading
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, ErrInvalidReading
	}
	return v, nil
}

// ResidentialCharge applies the residential tier: a flat 62.50 up to 5 m3,
// then 12.50 per cubic meter above that.
func ResidentialCharge(consumption float64) float64 {
	if consumption <= 5 {
		return 62.50
	}
	return 62.50 + (consumption-5)*12.50
}

// CommercialCharge applies one of the three historical commercial schedules.
// The lastYear table is discontinuous at the 15-to-16 m3 boundary; that is
// how the published rates read and it is kept verbatim.
func CommercialCharge(consumption float64, schedule domain.FeeSchedule) (float64, error) {
	switch schedule {
	case domain.FeeLatest:
		switch {
		case consumption <= 10:
			return 150, nil
		case consumption <= 20:
			return 150 + (consumption-10)*20, nil
		default:
			return 350 + (consumption-20)*30, nil
		}
	case domain.FeeLastYear:
		if consumption <= 15 {
			return consumption * 15, nil
		}
		return 150 + (consumption-10)*20, nil
	case domain.FeeOld:
		if consumption <= 10 {
			return 150, nil
		}
		return 150 + (consumption-10)*20, nil
	default:
		return 0, errors.New("unknown fee schedule: " + string(schedule))
	}
}

// Surcharge is the optional 2% late penalty on the water charge.
func Surcharge(charge float64, include bool) float64 {
	if !include {
		return 0
	}
	return charge * 0.02
}

// Total is the amount due for the period.
func Total(charge, surcharge float64) float64 {
	return charge + surcharge
}

// FormatAmount renders a monetary or reading value with two decimals.
// Rounding happens here, at the persistence boundary, never mid-chain.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
