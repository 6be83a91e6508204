package core

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/matiiroda/mg/internal/model"
)

// SaleLedger is the append-only history of committed sales, independent of
// caja session boundaries. Reporting reads it; nothing mutates past entries.
type SaleLedger struct {
	mu    sync.RWMutex
	sales []model.Sale
}

func NewSaleLedger() *SaleLedger { return &SaleLedger{} }

// Seed loads previously persisted sales at startup. Append-only afterwards.
func (l *SaleLedger) Seed(sales []model.Sale) {
	l.mu.Lock()
	l.sales = append([]model.Sale(nil), sales...)
	l.mu.Unlock()
}

func (l *SaleLedger) Append(sale model.Sale) {
	l.mu.Lock()
	l.sales = append(l.sales, sale)
	l.mu.Unlock()
}

// All returns every sale in insertion order.
func (l *SaleLedger) All() []model.Sale {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]model.Sale(nil), l.sales...)
}

// Range returns sales with from ≤ timestamp ≤ to, in insertion order.
func (l *SaleLedger) Range(from, to time.Time) []model.Sale {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []model.Sale
	for _, s := range l.sales {
		if s.Timestamp.Before(from) || s.Timestamp.After(to) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Summary aggregates a time range for reporting.
type Summary struct {
	Count     int
	ItemCount int
	Total     decimal.Decimal
	Cash      decimal.Decimal
	Card      decimal.Decimal
	Transfer  decimal.Decimal
	Deposits  decimal.Decimal
}

// Summarize totals the range and breaks revenue down by payment method.
func (l *SaleLedger) Summarize(from, to time.Time) Summary {
	sum := Summary{
		Total:    decimal.Zero,
		Cash:     decimal.Zero,
		Card:     decimal.Zero,
		Transfer: decimal.Zero,
		Deposits: decimal.Zero,
	}
	for _, s := range l.Range(from, to) {
		sum.Count++
		for _, item := range s.Items {
			sum.ItemCount += item.Quantity
		}
		sum.Total = sum.Total.Add(s.Total)
		sum.Deposits = sum.Deposits.Add(s.Deposit)
		switch s.PaymentMethod {
		case model.PaymentCash:
			sum.Cash = sum.Cash.Add(s.Total)
		case model.PaymentCard:
			sum.Card = sum.Card.Add(s.Total)
		case model.PaymentTransfer:
			sum.Transfer = sum.Transfer.Add(s.Total)
		}
	}
	return sum
}
