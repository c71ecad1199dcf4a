package billing

import (
	"strconv"
	"strings"
)

// UnknownMonth marks a billing month that could not be normalized.
const UnknownMonth = "Unknown"

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Months lists the canonical full month names in calendar order.
func Months() []string {
	out := make([]string, len(monthNames))
	copy(out, monthNames)
	return out
}

// NormalizeMonth maps a full name, three-letter abbreviation, or 1-12 number
// to the canonical full month name. Empty input normalizes to UnknownMonth;
// anything else unrecognized passes through untouched.
func NormalizeMonth(raw string) string {
	month := strings.TrimSpace(raw)
	if month == "" {
		return UnknownMonth
	}

	for _, name := range monthNames {
		if name == month {
			return name
		}
	}
	for _, name := range monthNames {
		if strings.EqualFold(name[:3], month) {
			return name
		}
	}
	if n, err := strconv.Atoi(month); err == nil && n >= 1 && n <= 12 {
		return monthNames[n-1]
	}
	return month
}

// BillingPeriod renders the "{month} {year}" label stored on each record.
func BillingPeriod(month, year string) string {
	return month + " " + year
}
