package domain

import "time"

// Enumerations
const (
	RoleAdmin  UserRole = "admin"
	RoleUser   UserRole = "user"
	RoleReader UserRole = "reader"

	ServiceResidential ServiceType = "residential"
	ServiceCommercial  ServiceType = "commercial"

	ConsumerNew ConsumerType = "new"
	ConsumerOld ConsumerType = "old"

	ReadingNormal ReadingStatus = "normal"
	ReadingDefect ReadingStatus = "defect"

	PaymentPaid    PaymentStatus = "paid"
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentOverdue PaymentStatus = "overdue"

	FeeLatest   FeeSchedule = "latest"
	FeeLastYear FeeSchedule = "lastYear"
	FeeOld      FeeSchedule = "old"
)

type UserRole string
type ServiceType string
type ConsumerType string
type ReadingStatus string
type PaymentStatus string
type FeeSchedule string

// Actor is the authenticated principal performing an operation. Identity
// comes from the auth provider; this system only reads it.
type Actor struct {
	UID         string
	Email       string
	DisplayName string
}

// Name prefers the display name and falls back to the email, matching how
// billing records attribute their processor.
func (a Actor) Name() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Email
}

// Consumer is the immutable identity record for a water-service connection.
// Billing activity is appended as child BillingRecords, never written back
// onto the consumer. (location, wsin) is unique.
type Consumer struct {
	ID            int64
	WSIN          string
	ConsumerName  string
	Location      string
	ServiceType   ServiceType
	ConsumerType  ConsumerType
	CreatedAt     time.Time
	CreatedBy     string
	CreatedByName string
}

// BillingRecord is one billing event, owned by exactly one consumer.
// Readings and monetary amounts are numeric strings, two decimals at
// persistence.
type BillingRecord struct {
	ID                int64
	ConsumerID        int64
	Year              string
	Month             string
	BillingPeriod     string
	Status            ReadingStatus
	PreviousReading   string
	PresentReading    string
	WaterConsumption  string
	WaterCharge       string
	Surcharge         string
	OverallTotal      string
	IncludeSurcharge  bool
	CommercialFeeType FeeSchedule
	PaymentStatus     PaymentStatus
	IsDefect          bool
	ProcessedBy       string
	CreatedAt         time.Time
}

// ConsumerRecord pairs a billing record with its owning consumer for
// cross-consumer listings and exports.
type ConsumerRecord struct {
	Consumer Consumer
	Record   BillingRecord
}

type UserAccount struct {
	ID           int64
	Email        string
	FullName     string
	Role         UserRole
	PasswordHash *string
	CreatedAt    time.Time
	CreatedBy    string
}

type Location struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
