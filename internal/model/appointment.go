package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Appointment statuses.
const (
	AppointmentPending   = "PENDING"
	AppointmentConfirmed = "CONFIRMED"
	AppointmentCancelled = "CANCELLED"
	AppointmentCompleted = "COMPLETED"
)

// Appointment books a service for a client. The deposit taken at booking
// time is subtracted from the sale total when the visit is charged.
type Appointment struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientName string          `gorm:"not null"`
	ServiceID  string          `gorm:"not null"`
	StaffID    *uuid.UUID      `gorm:"type:uuid"`
	Date       time.Time       `gorm:"index;not null"`
	Deposit    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status     string          `gorm:"type:varchar(12);not null;default:'PENDING'"`
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
