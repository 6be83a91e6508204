package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/matiiroda/mg/internal/model"
)

// CartBuilder stages one in-progress sale for the terminal. Lines keep their
// insertion order for display and ticket rendering; names and prices are
// snapshots taken when the line is added. The cart is never persisted.
type CartBuilder struct {
	mu      sync.Mutex
	catalog *CatalogStore
	caja    *CajaManager
	ledger  *SaleLedger
	lines   []model.SaleItem
}

func NewCartBuilder(catalog *CatalogStore, caja *CajaManager, ledger *SaleLedger) *CartBuilder {
	return &CartBuilder{catalog: catalog, caja: caja, ledger: ledger}
}

// AddItem puts one unit of the referenced item into the cart. Products are
// checked against stock minus what the cart already holds — a derived
// availability recomputed on every call, not a persisted reservation.
// Services always merge.
func (c *CartBuilder) AddItem(id, kind string) error {
	if !c.caja.IsOpen() {
		return ErrCajaClosed
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	switch kind {
	case model.KindProduct:
		p, ok := c.catalog.Product(id)
		if !ok {
			return ErrNotFound
		}
		inCart := c.quantityOf(id, kind)
		if p.Stock-inCart <= 0 {
			return &InsufficientStockError{ProductID: id, Name: p.Name, Requested: inCart + 1, Available: p.Stock}
		}
		c.merge(model.SaleItem{RefID: id, Name: p.Name, Kind: kind, Price: p.Price, Quantity: 1})
	case model.KindService:
		svc, ok := c.catalog.Service(id)
		if !ok {
			return ErrNotFound
		}
		c.merge(model.SaleItem{RefID: id, Name: svc.Name, Kind: kind, Price: svc.Price, Quantity: 1})
	default:
		return &ValidationError{Field: "kind", Reason: "debe ser PRODUCT o SERVICE"}
	}
	return nil
}

// RemoveLine drops the line at idx. Nothing is released in the catalog —
// availability is derived from cart contents on the next AddItem.
func (c *CartBuilder) RemoveLine(idx int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx < 0 || idx >= len(c.lines) {
		return ErrNotFound
	}
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
	return nil
}

// Lines returns a copy of the cart in insertion order.
func (c *CartBuilder) Lines() []model.SaleItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.SaleItem(nil), c.lines...)
}

func (c *CartBuilder) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalLocked()
}

// AmountDue is max(0, total − deposit). Negative deposits are rejected at
// the request boundary, not here.
func (c *CartBuilder) AmountDue(deposit decimal.Decimal) decimal.Decimal {
	due := c.Total().Sub(deposit)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// Commit finalizes the cart into an immutable Sale. The four effects —
// stock decrements, caja aggregation, ledger append, cart clear — apply as
// one logical unit: when a decrement fails partway, decrements already
// applied for earlier lines are unwound before the error surfaces. The
// per-line re-check is the authoritative guard against stock consumed since
// the lines were added (optimistic check, no reservation).
func (c *CartBuilder) Commit(paymentMethod, clientLabel string, deposit decimal.Decimal, operatorID string) (*model.Sale, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.lines) == 0 {
		return nil, ErrEmptyCart
	}
	if !c.caja.IsOpen() {
		return nil, ErrCajaClosed
	}

	var applied []model.SaleItem
	rollback := func() {
		for _, a := range applied {
			_ = c.catalog.AdjustStock(a.RefID, a.Quantity)
		}
	}
	for _, line := range c.lines {
		if line.Kind != model.KindProduct {
			continue
		}
		if err := c.catalog.DecrementStock(line.RefID, line.Quantity); err != nil {
			rollback()
			return nil, err
		}
		applied = append(applied, line)
	}

	if clientLabel == "" {
		clientLabel = model.WalkInClient
	}
	sale := model.Sale{
		ID:            uuid.New(),
		Timestamp:     time.Now().UTC(),
		Items:         append([]model.SaleItem(nil), c.lines...),
		Total:         c.totalLocked(),
		PaymentMethod: paymentMethod,
		OperatorID:    operatorID,
		ClientLabel:   clientLabel,
		Deposit:       deposit,
	}
	for i := range sale.Items {
		sale.Items[i].SaleID = sale.ID
	}

	if err := c.caja.RecordSale(sale); err != nil {
		rollback()
		return nil, err
	}
	c.ledger.Append(sale)
	c.lines = nil
	return &sale, nil
}

func (c *CartBuilder) totalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

func (c *CartBuilder) quantityOf(id, kind string) int {
	for _, line := range c.lines {
		if line.RefID == id && line.Kind == kind {
			return line.Quantity
		}
	}
	return 0
}

func (c *CartBuilder) merge(item model.SaleItem) {
	for i, line := range c.lines {
		if line.RefID == item.RefID && line.Kind == item.Kind {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, item)
}
