package tariff

import (
	"testing"

	"waterworks-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestConsumption(t *testing.T) {
	t.Run("valid pair", func(t *testing.T) {
		c, err := Consumption("10", "15")
		assert.NoError(t, err)
		assert.Equal(t, 5.0, c)
	})

	t.Run("equal readings", func(t *testing.T) {
		c, err := Consumption("20", "20")
		assert.NoError(t, err)
		assert.Equal(t, 0.0, c)
	})

	t.Run("fractional readings", func(t *testing.T) {
		c, err := Consumption("10.5", "13.25")
		assert.NoError(t, err)
		assert.InDelta(t, 2.75, c, 1e-9)
	})

	t.Run("whitespace tolerated", func(t *testing.T) {
		c, err := Consumption(" 10 ", " 12 ")
		assert.NoError(t, err)
		assert.Equal(t, 2.0, c)
	})

	t.Run("present below previous", func(t *testing.T) {
		_, err := Consumption("15", "10")
		assert.ErrorIs(t, err, ErrInvalidReading)
	})

	t.Run("non-numeric", func(t *testing.T) {
		_, err := Consumption("abc", "10")
		assert.ErrorIs(t, err, ErrInvalidReading)
	})

	t.Run("negative reading", func(t *testing.T) {
		_, err := Consumption("-1", "10")
		assert.ErrorIs(t, err, ErrInvalidReading)
	})

	t.Run("non-finite reading", func(t *testing.T) {
		_, err := Consumption("0", "Inf")
		assert.ErrorIs(t, err, ErrInvalidReading)
	})
}

func TestResidentialCharge(t *testing.T) {
	cases := []struct {
		name        string
		consumption float64
		want        float64
	}{
		{"zero is minimum", 0, 62.50},
		{"at tier boundary", 5, 62.50},
		{"above boundary", 10, 125.00},
		{"fractional", 6.5, 81.25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ResidentialCharge(tc.consumption), 1e-9)
		})
	}
}

func TestCommercialCharge(t *testing.T) {
	cases := []struct {
		name        string
		consumption float64
		schedule    domain.FeeSchedule
		want        float64
	}{
		{"latest minimum", 0, domain.FeeLatest, 150},
		{"latest first boundary", 10, domain.FeeLatest, 150},
		{"latest second tier", 15, domain.FeeLatest, 250},
		{"latest second boundary", 20, domain.FeeLatest, 350},
		{"latest top tier", 21, domain.FeeLatest, 380},
		{"lastYear per-unit", 10, domain.FeeLastYear, 150},
		{"lastYear boundary low side", 15, domain.FeeLastYear, 225},
		{"lastYear boundary high side", 16, domain.FeeLastYear, 270},
		{"old minimum", 10, domain.FeeOld, 150},
		{"old above minimum", 25, domain.FeeOld, 450},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CommercialCharge(tc.consumption, tc.schedule)
			assert.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}

	t.Run("unknown schedule", func(t *testing.T) {
		_, err := CommercialCharge(10, domain.FeeSchedule("bogus"))
		assert.Error(t, err)
	})
}

func TestSurcharge(t *testing.T) {
	assert.Equal(t, 0.0, Surcharge(380, false))
	assert.InDelta(t, 7.60, Surcharge(380, true), 1e-9)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "62.50", FormatAmount(62.5))
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "387.60", FormatAmount(Total(380, Surcharge(380, true))))
}

// Rounding happens only once, when the final amount is rendered.
func TestRoundingAtPersistenceOnly(t *testing.T) {
	consumption, err := Consumption("0", "6.333")
	assert.NoError(t, err)

	charge := ResidentialCharge(consumption)
	surcharge := Surcharge(charge, true)
	total := Total(charge, surcharge)

	assert.Equal(t, "79.16", FormatAmount(charge))
	assert.Equal(t, "1.58", FormatAmount(surcharge))
	assert.Equal(t, "80.75", FormatAmount(total))
}
