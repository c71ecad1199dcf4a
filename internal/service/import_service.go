package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"waterworks-backend/internal/billing"
	"waterworks-backend/internal/domain"
	"waterworks-backend/internal/metrics"
	"waterworks-backend/internal/ports"
	"github.com/google/uuid"
)

var ErrNoImportData = errors.New("spreadsheet has no data rows")

// fieldAliases maps every accepted spreadsheet header, normalized, to its
// canonical field name. One declarative table instead of per-call-site
// matching; unknown headers keep their normalized form.
var fieldAliases = buildAliasIndex(map[string][]string{
	"wsin":            {"wsin", "ws in", "water service identification number"},
	"consumerName":    {"consumername", "consumer name", "name", "customer name"},
	"location":        {"location", "address", "area"},
	"serviceType":     {"type", "servicetype", "service type"},
	"consumerType":    {"consumertype", "consumer type", "customertype", "customer type"},
	"year":            {"year", "billingyear", "billing year"},
	"month":           {"month", "billingmonth", "billing month"},
	"status":          {"status", "meterstatus", "meter status"},
	"previousReading": {"previousreading", "previous reading", "lastreading", "last reading"},
	"presentReading":  {"presentreading", "present reading", "currentreading", "current reading"},
	"consumption":     {"consumption", "waterconsumption", "water consumption", "usage"},
	"waterCharge":     {"watercharge", "water charge", "charge", "amount"},
	"surcharge":       {"surcharge", "penalty", "latefee", "late fee"},
	"overallTotal":    {"overalltotal", "overall total", "total", "grandtotal", "grand total"},
	"paymentStatus":   {"paymentstatus", "payment status", "statuspayment", "paidstatus", "paid status"},
	"processedBy":     {"processedby", "processed by", "collectedby", "collected by"},
	"createdAt":       {"createdat", "created at", "date", "billingdate", "billing date"},
})

var whitespace = regexp.MustCompile(`\s+`)

func buildAliasIndex(table map[string][]string) map[string]string {
	index := make(map[string]string, len(table)*3)
	for canonical, aliases := range table {
		for _, alias := range aliases {
			index[normalizeHeader(alias)] = canonical
		}
	}
	return index
}

func normalizeHeader(h string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(h)), "")
}

// CanonicalField resolves a raw spreadsheet header to the canonical schema
// field, or to its normalized form when no alias matches.
func CanonicalField(header string) string {
	normalized := normalizeHeader(header)
	if canonical, ok := fieldAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// ConsumerResolver matches spreadsheet rows to consumer identities.
type ConsumerResolver interface {
	FindOrCreate(ctx context.Context, wsin, location string, defaults ConsumerDefaults) (*domain.Consumer, error)
}

// ImportService reconciles spreadsheet rows against the consumer store and
// appends one billing record per row. Unlike the interactive flow, import
// trusts the spreadsheet's own charge figures and never recomputes them.
type ImportService struct {
	Identity ConsumerResolver
	Records  ports.BillingRecordStore
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Now      func() time.Time
}

type ImportResult struct {
	BatchID       string
	ImportedCount int
	ErrorCount    int
}

// Import processes rows one at a time; row 0 is the header row. Row failures
// are logged and counted, never fatal: partial import success beats
// all-or-nothing. Re-running a file re-matches consumers by (wsin, location)
// but appends billing records again, since record creation is unconditional.
func (s ImportService) Import(ctx context.Context, rows [][]string, actor domain.Actor) (ImportResult, error) {
	if len(rows) < 2 {
		return ImportResult{}, ErrNoImportData
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	result := ImportResult{BatchID: uuid.NewString()}
	if s.Metrics != nil {
		s.Metrics.ImportBatches.Inc()
	}

	headers := rows[0]
	for i, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		if err := s.importRow(ctx, headers, row, actor, now); err != nil {
			s.Logger.Warn("import row failed", "batch", result.BatchID, "row", i+2, "err", err)
			result.ErrorCount++
			if s.Metrics != nil {
				s.Metrics.ImportRowsTotal.WithLabelValues("error").Inc()
			}
			continue
		}
		result.ImportedCount++
		if s.Metrics != nil {
			s.Metrics.ImportRowsTotal.WithLabelValues("imported").Inc()
		}
	}

	s.Logger.Info("import completed",
		"batch", result.BatchID,
		"imported", result.ImportedCount,
		"errors", result.ErrorCount,
	)
	return result, nil
}

func (s ImportService) importRow(ctx context.Context, headers, row []string, actor domain.Actor, now func() time.Time) error {
	fields := make(map[string]string, len(headers))
	for idx, header := range headers {
		if header == "" || idx >= len(row) {
			continue
		}
		if value := strings.TrimSpace(row[idx]); value != "" {
			fields[CanonicalField(header)] = value
		}
	}

	if fields["wsin"] == "" || fields["consumerName"] == "" || fields["location"] == "" {
		return errors.New("missing required fields (wsin, consumer name, location)")
	}

	year := fields["year"]
	if year == "" {
		year = strconv.Itoa(now().Year())
	}
	month := billing.NormalizeMonth(fields["month"])

	total, _ := strconv.ParseFloat(fields["overallTotal"], 64)
	surcharge, _ := strconv.ParseFloat(fields["surcharge"], 64)
	paymentStatus := billing.ResolvePaymentStatus(fields["paymentStatus"], total, surcharge)

	consumer, err := s.Identity.FindOrCreate(ctx, fields["wsin"], fields["location"], ConsumerDefaults{
		ConsumerName: fields["consumerName"],
		ServiceType:  domain.ServiceType(fields["serviceType"]),
		ConsumerType: domain.ConsumerType(fields["consumerType"]),
		Actor:        actor,
	})
	if err != nil {
		return err
	}

	status := strings.ToLower(fields["status"])
	if status == "" {
		status = string(domain.ReadingNormal)
	}
	processedBy := fields["processedBy"]
	if processedBy == "" {
		processedBy = actor.Name()
	}

	_, err = s.Records.Append(ctx, consumer.ID, domain.BillingRecord{
		Year:              year,
		Month:             month,
		BillingPeriod:     billing.BillingPeriod(month, year),
		Status:            domain.ReadingStatus(status),
		PreviousReading:   cellOr(fields, "previousReading", "0"),
		PresentReading:    cellOr(fields, "presentReading", "0"),
		WaterConsumption:  cellOr(fields, "consumption", "0"),
		WaterCharge:       cellOr(fields, "waterCharge", "0"),
		Surcharge:         cellOr(fields, "surcharge", "0"),
		OverallTotal:      cellOr(fields, "overallTotal", "0"),
		IncludeSurcharge:  surcharge > 0,
		CommercialFeeType: domain.FeeLatest,
		PaymentStatus:     paymentStatus,
		IsDefect:          status == string(domain.ReadingDefect),
		ProcessedBy:       processedBy,
		CreatedAt:         parseRowDate(fields["createdAt"], now),
	})
	return err
}

func cellOr(fields map[string]string, key, fallback string) string {
	if v := fields[key]; v != "" {
		return v
	}
	return fallback
}

func parseRowDate(raw string, now func() time.Time) time.Time {
	if raw == "" {
		return now()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "01/02/2006", "01-02-06"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return now()
}
