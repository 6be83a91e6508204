package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a stock-tracked sellable item. IDs come from the linked
// spreadsheet when the catalog is pulled, so they are plain strings rather
// than generated uuids.
type Product struct {
	ID        string          `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"index;not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock     int             `gorm:"not null;default:0" json:"stock"`
	MinStock  int             `gorm:"not null;default:5" json:"min_stock"`
	Category  string          `gorm:"not null;default:'General'" json:"category"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}

// LowStock reports whether the product sits at or below its minimum
// threshold.
func (p Product) LowStock() bool { return p.Stock <= p.MinStock }

// Service is a bookable treatment. No stock concept — availability is
// unlimited.
type Service struct {
	ID        string          `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Duration  int             `gorm:"not null;default:0" json:"duration"`
	Category  string          `gorm:"not null;default:'General'" json:"category"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}
