package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line item kinds.
const (
	KindProduct = "PRODUCT"
	KindService = "SERVICE"
)

// Payment methods.
const (
	PaymentCash     = "CASH"
	PaymentCard     = "CARD"
	PaymentTransfer = "TRANSFER"
)

// WalkInClient is the label stored when the operator leaves the client field
// empty.
const WalkInClient = "walk-in"

// SaleItem is one cart line. Name and price are snapshots taken when the
// line entered the cart, so later catalog edits never rewrite a committed
// sale.
type SaleItem struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"-"`
	SaleID   uuid.UUID       `gorm:"type:uuid;index" json:"-"`
	RefID    string          `gorm:"not null" json:"ref_id"`
	Name     string          `gorm:"not null" json:"name"`
	Kind     string          `gorm:"type:varchar(10);not null" json:"kind"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Quantity int             `gorm:"not null" json:"quantity"`
}

// Subtotal returns price × quantity for the line.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Sale is immutable once committed. Items are an owned composition in cart
// order; deleting a sale discards them.
type Sale struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Timestamp     time.Time       `gorm:"index;not null"`
	Items         []SaleItem      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(10);not null"`
	OperatorID    string          `gorm:"not null"`
	ClientLabel   string          `gorm:"not null;default:''"`
	Deposit       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// Net is the amount that actually moved during the sale: total minus the
// deposit taken earlier (e.g. when the appointment was booked).
func (s Sale) Net() decimal.Decimal { return s.Total.Sub(s.Deposit) }

// AmountDue floors at zero. A deposit larger than the total never produces a
// negative charge.
func (s Sale) AmountDue() decimal.Decimal {
	due := s.Total.Sub(s.Deposit)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}
