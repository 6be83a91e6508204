package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/matiiroda/mg/internal/model"
)

// CajaManager owns the single live cash register session. Closing keeps the
// session readable for the end-of-shift report; the next Open replaces it
// with a fresh one.
type CajaManager struct {
	mu      sync.RWMutex
	session *model.CajaSession
}

func NewCajaManager() *CajaManager { return &CajaManager{} }

// Restore seeds the manager with a session loaded at startup (a register
// left open across a restart).
func (m *CajaManager) Restore(s model.CajaSession) {
	m.mu.Lock()
	m.session = &s
	m.mu.Unlock()
}

// Open starts a fresh session. Only valid while no session is open.
func (m *CajaManager) Open(openingBalance decimal.Decimal, openedBy string) (model.CajaSession, error) {
	if openingBalance.IsNegative() {
		return model.CajaSession{}, &ValidationError{Field: "opening_balance", Reason: "no puede ser negativo"}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != nil && m.session.IsOpen {
		return model.CajaSession{}, ErrCajaAlreadyOpen
	}
	m.session = &model.CajaSession{
		ID:             uuid.New(),
		IsOpen:         true,
		OpenedAt:       time.Now().UTC(),
		OpenedBy:       openedBy,
		OpeningBalance: openingBalance,
		NetSales:       decimal.Zero,
	}
	return m.copyLocked(), nil
}

func (m *CajaManager) IsOpen() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session != nil && m.session.IsOpen
}

// RecordSale appends the sale and maintains the running net total
// (Σ total − deposit). The cart denies operations while closed; this
// re-check keeps the invariant local to the session.
func (m *CajaManager) RecordSale(sale model.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil || !m.session.IsOpen {
		return ErrCajaClosed
	}
	m.session.Sales = append(m.session.Sales, sale)
	m.session.SaleCount = len(m.session.Sales)
	m.session.NetSales = m.session.NetSales.Add(sale.Net())
	return nil
}

// Close stamps ClosedAt and flips the state. The session data stays readable
// until the next Open.
func (m *CajaManager) Close() (model.CajaSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil || !m.session.IsOpen {
		return model.CajaSession{}, ErrCajaAlreadyClosed
	}
	now := time.Now().UTC()
	m.session.IsOpen = false
	m.session.ClosedAt = &now
	return m.copyLocked(), nil
}

// Current returns a copy of the live (or last closed) session.
func (m *CajaManager) Current() (model.CajaSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return model.CajaSession{}, false
	}
	return m.copyLocked(), true
}

// EstimatedCashOnHand is the opening balance plus the net amount of CASH
// sales. Card and transfer sales never enter the drawer.
func (m *CajaManager) EstimatedCashOnHand() decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return decimal.Zero
	}
	cash := m.session.OpeningBalance
	for _, s := range m.session.Sales {
		if s.PaymentMethod == model.PaymentCash {
			cash = cash.Add(s.Net())
		}
	}
	return cash
}

func (m *CajaManager) copyLocked() model.CajaSession {
	s := *m.session
	s.Sales = append([]model.Sale(nil), m.session.Sales...)
	return s
}
