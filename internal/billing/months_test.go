package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMonth(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"full name exact", "January", "January"},
		{"lowercase full name passes through", "january", "january"},
		{"three letter abbreviation", "Sep", "September"},
		{"abbreviation any case", "dEC", "December"},
		{"numeric", "3", "March"},
		{"numeric high", "12", "December"},
		{"numeric out of range passes through", "13", "13"},
		{"unrecognized passes through", "Septembre", "Septembre"},
		{"empty is unknown", "", UnknownMonth},
		{"blank is unknown", "   ", UnknownMonth},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeMonth(tc.raw))
		})
	}
}

func TestMonths(t *testing.T) {
	months := Months()
	assert.Len(t, months, 12)
	assert.Equal(t, "January", months[0])
	assert.Equal(t, "December", months[11])

	// Mutating the copy must not affect later calls.
	months[0] = "Nothing"
	assert.Equal(t, "January", Months()[0])
}

func TestBillingPeriod(t *testing.T) {
	assert.Equal(t, "March 2024", BillingPeriod("March", "2024"))
}
