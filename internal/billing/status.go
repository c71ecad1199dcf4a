package billing

import (
	"strings"

	"waterworks-backend/internal/domain"
)

// ResolvePaymentStatus canonicalizes a payment status. An explicit value that
// matches one of the three statuses (case-insensitively, trimmed) wins.
// Otherwise the status is inferred: a zero total means nothing was collected,
// a surcharge means the payment came in late, anything else is settled.
// Unrecognized explicit values degrade to unpaid rather than failing.
func ResolvePaymentStatus(explicit string, overallTotal, surcharge float64) domain.PaymentStatus {
	if explicit == "" {
		switch {
		case overallTotal == 0:
			return domain.PaymentUnpaid
		case surcharge > 0:
			return domain.PaymentOverdue
		default:
			return domain.PaymentPaid
		}
	}

	switch status := strings.ToLower(strings.TrimSpace(explicit)); status {
	case "paid", "unpaid", "overdue":
		return domain.PaymentStatus(status)
	}
	return domain.PaymentUnpaid
}
