package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CajaSession is one cash register shift. Exactly one session is live at a
// time; closing flips IsOpen and stamps ClosedAt, and the next Open replaces
// the reference with a fresh session. Closed sessions are archived as rows;
// the per-sale detail belongs to the ledger, so only aggregates persist here.
type CajaSession struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	IsOpen         bool            `gorm:"not null"`
	OpenedAt       time.Time       `gorm:"not null"`
	ClosedAt       *time.Time
	OpenedBy       string          `gorm:"not null;default:''"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// NetSales is maintained incrementally on every recorded sale:
	// Σ (sale.Total − sale.Deposit) over Sales. Never set directly.
	NetSales  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SaleCount int             `gorm:"not null;default:0"`

	// Sales lives in memory only — the SaleLedger owns sale persistence.
	Sales []Sale `gorm:"-"`
}
