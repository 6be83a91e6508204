package core

import (
	"sort"
	"sync"

	"github.com/matiiroda/mg/internal/model"
)

// CatalogStore is the single source of truth for sellable items and their
// stock. It is owned by the terminal process and injected into the cart and
// the sync layer; callers always receive copies, never references into the
// maps.
type CatalogStore struct {
	mu       sync.RWMutex
	products map[string]model.Product
	services map[string]model.Service
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		products: make(map[string]model.Product),
		services: make(map[string]model.Service),
	}
}

// UpsertProduct inserts or replaces a product. Stock is mutated here only by
// manual edits and pull-syncs; sale commits go through DecrementStock.
func (s *CatalogStore) UpsertProduct(p model.Product) error {
	if p.ID == "" {
		return &ValidationError{Field: "id", Reason: "es obligatorio"}
	}
	if p.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "no puede ser negativo"}
	}
	if p.Stock < 0 {
		return &ValidationError{Field: "stock", Reason: "no puede ser negativo"}
	}
	if p.MinStock < 0 {
		return &ValidationError{Field: "min_stock", Reason: "no puede ser negativo"}
	}
	s.mu.Lock()
	s.products[p.ID] = p
	s.mu.Unlock()
	return nil
}

// UpsertService inserts or replaces a service.
func (s *CatalogStore) UpsertService(svc model.Service) error {
	if svc.ID == "" {
		return &ValidationError{Field: "id", Reason: "es obligatorio"}
	}
	if svc.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "no puede ser negativo"}
	}
	if svc.Duration < 0 {
		return &ValidationError{Field: "duration", Reason: "no puede ser negativo"}
	}
	s.mu.Lock()
	s.services[svc.ID] = svc
	s.mu.Unlock()
	return nil
}

// DeleteProduct removes a product. Historical sales keep their snapshots, so
// there is nothing else to touch.
func (s *CatalogStore) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *CatalogStore) DeleteService(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.services[id]; !ok {
		return ErrNotFound
	}
	delete(s.services, id)
	return nil
}

func (s *CatalogStore) Product(id string) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	return p, ok
}

func (s *CatalogStore) Service(id string) (model.Service, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	svc, ok := s.services[id]
	return svc, ok
}

// Products returns all products sorted by name.
func (s *CatalogStore) Products() []model.Product {
	s.mu.RLock()
	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Services returns all services sorted by name.
func (s *CatalogStore) Services() []model.Service {
	s.mu.RLock()
	out := make([]model.Service, 0, len(s.services))
	for _, svc := range s.services {
		out = append(out, svc)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DecrementStock is called once per product line during a sale commit.
// Quantities are pre-validated by the caller; this is the authoritative
// check and it never truncates silently.
func (s *CatalogStore) DecrementStock(id string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return ErrNotFound
	}
	if qty > p.Stock {
		return &InsufficientStockError{ProductID: id, Name: p.Name, Requested: qty, Available: p.Stock}
	}
	p.Stock -= qty
	s.products[id] = p
	return nil
}

// AdjustStock applies a signed delta: manual corrections and commit
// rollbacks. Floors at zero like the manual-edit path of the register.
func (s *CatalogStore) AdjustStock(id string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return ErrNotFound
	}
	p.Stock += delta
	if p.Stock < 0 {
		p.Stock = 0
	}
	s.products[id] = p
	return nil
}

// ReplaceAll swaps the product set wholesale. The sheet is authoritative on
// pull: ids missing from the incoming set are dropped along with their local
// stock, and ids that reappear keep the pulled stock value. Interleaved
// local edits are lost — a documented data-loss tradeoff, not a merge.
func (s *CatalogStore) ReplaceAll(products []model.Product) {
	next := make(map[string]model.Product, len(products))
	for _, p := range products {
		next[p.ID] = p
	}
	s.mu.Lock()
	s.products = next
	s.mu.Unlock()
}

// LowStock returns products at or below their minimum threshold, sorted by
// name.
func (s *CatalogStore) LowStock() []model.Product {
	s.mu.RLock()
	var out []model.Product
	for _, p := range s.products {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
