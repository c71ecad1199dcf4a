package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the billing operations the service performs. Registered on
// the default registry and served from /metrics.
type Metrics struct {
	SubmissionsTotal *prometheus.CounterVec
	ImportRowsTotal  *prometheus.CounterVec
	ImportBatches    prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		SubmissionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waterworks_billing_submissions_total",
				Help: "Billing record submissions by reading status",
			},
			[]string{"status"},
		),
		ImportRowsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waterworks_import_rows_total",
				Help: "Spreadsheet import rows by result",
			},
			[]string{"result"}, // imported or error
		),
		ImportBatches: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "waterworks_import_batches_total",
				Help: "Spreadsheet import runs",
			},
		),
	}
}
