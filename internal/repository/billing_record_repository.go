package repository

import (
	"context"

	"waterworks-backend/internal/db"
	"waterworks-backend/internal/domain"
	"github.com/jackc/pgx/v5"
)

type BillingRecordRepository struct {
	DB *db.Postgres
}

// Append inserts a billing record under its owning consumer. Records are
// append-only; there is no update or delete path.
func (r BillingRecordRepository) Append(ctx context.Context, consumerID int64, rec domain.BillingRecord) (*domain.BillingRecord, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO billing_records (
			consumer_id, year, month, billing_period, status,
			previous_reading, present_reading, water_consumption,
			water_charge, surcharge, overall_total, include_surcharge,
			commercial_fee_type, payment_status, is_defect, processed_by, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		RETURNING id, consumer_id, year, month, billing_period, status,
			previous_reading, present_reading, water_consumption,
			water_charge, surcharge, overall_total, include_surcharge,
			commercial_fee_type, payment_status, is_defect, processed_by, created_at
	`, consumerID, rec.Year, rec.Month, rec.BillingPeriod, rec.Status,
		rec.PreviousReading, rec.PresentReading, rec.WaterConsumption,
		rec.WaterCharge, rec.Surcharge, rec.OverallTotal, rec.IncludeSurcharge,
		rec.CommercialFeeType, rec.PaymentStatus, rec.IsDefect, rec.ProcessedBy, rec.CreatedAt)
	return scanBillingRecord(row)
}

// ListByConsumer returns a consumer's billing records, newest first.
func (r BillingRecordRepository) ListByConsumer(ctx context.Context, consumerID int64) ([]domain.BillingRecord, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, consumer_id, year, month, billing_period, status,
			previous_reading, present_reading, water_consumption,
			water_charge, surcharge, overall_total, include_surcharge,
			commercial_fee_type, payment_status, is_defect, processed_by, created_at
		FROM billing_records
		WHERE consumer_id=$1
		ORDER BY created_at DESC
	`, consumerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.BillingRecord
	for rows.Next() {
		rec, err := scanBillingRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rec)
	}
	return items, rows.Err()
}

// ListRecent returns the newest billing records across all consumers,
// joined with the owning consumer's identity.
func (r BillingRecordRepository) ListRecent(ctx context.Context, limit int) ([]domain.ConsumerRecord, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT b.id, b.consumer_id, b.year, b.month, b.billing_period, b.status,
			b.previous_reading, b.present_reading, b.water_consumption,
			b.water_charge, b.surcharge, b.overall_total, b.include_surcharge,
			b.commercial_fee_type, b.payment_status, b.is_defect, b.processed_by, b.created_at,
			c.id, c.wsin, c.consumer_name, c.location, c.service_type,
			c.consumer_type, c.created_at, c.created_by, c.created_by_name
		FROM billing_records b
		JOIN consumers c ON c.id = b.consumer_id
		ORDER BY b.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ConsumerRecord
	for rows.Next() {
		var (
			cr            domain.ConsumerRecord
			status        string
			feeType       string
			paymentStatus string
			serviceType   string
			consumerType  string
		)
		if err := rows.Scan(
			&cr.Record.ID,
			&cr.Record.ConsumerID,
			&cr.Record.Year,
			&cr.Record.Month,
			&cr.Record.BillingPeriod,
			&status,
			&cr.Record.PreviousReading,
			&cr.Record.PresentReading,
			&cr.Record.WaterConsumption,
			&cr.Record.WaterCharge,
			&cr.Record.Surcharge,
			&cr.Record.OverallTotal,
			&cr.Record.IncludeSurcharge,
			&feeType,
			&paymentStatus,
			&cr.Record.IsDefect,
			&cr.Record.ProcessedBy,
			&cr.Record.CreatedAt,
			&cr.Consumer.ID,
			&cr.Consumer.WSIN,
			&cr.Consumer.ConsumerName,
			&cr.Consumer.Location,
			&serviceType,
			&consumerType,
			&cr.Consumer.CreatedAt,
			&cr.Consumer.CreatedBy,
			&cr.Consumer.CreatedByName,
		); err != nil {
			return nil, err
		}
		cr.Record.Status = domain.ReadingStatus(status)
		cr.Record.CommercialFeeType = domain.FeeSchedule(feeType)
		cr.Record.PaymentStatus = domain.PaymentStatus(paymentStatus)
		cr.Consumer.ServiceType = domain.ServiceType(serviceType)
		cr.Consumer.ConsumerType = domain.ConsumerType(consumerType)
		items = append(items, cr)
	}
	return items, rows.Err()
}

func scanBillingRecord(row pgx.Row) (*domain.BillingRecord, error) {
	var (
		rec           domain.BillingRecord
		status        string
		feeType       string
		paymentStatus string
	)
	if err := row.Scan(
		&rec.ID,
		&rec.ConsumerID,
		&rec.Year,
		&rec.Month,
		&rec.BillingPeriod,
		&status,
		&rec.PreviousReading,
		&rec.PresentReading,
		&rec.WaterConsumption,
		&rec.WaterCharge,
		&rec.Surcharge,
		&rec.OverallTotal,
		&rec.IncludeSurcharge,
		&feeType,
		&paymentStatus,
		&rec.IsDefect,
		&rec.ProcessedBy,
		&rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	rec.Status = domain.ReadingStatus(status)
	rec.CommercialFeeType = domain.FeeSchedule(feeType)
	rec.PaymentStatus = domain.PaymentStatus(paymentStatus)
	return &rec, nil
}
