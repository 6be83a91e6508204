// Package core implements the transaction and session reconciliation engine:
// the catalog store, the cart builder, the caja session state machine and the
// sale ledger. All state lives in memory and every operation completes
// without suspending; persistence and transport are layered on top by the
// service package.
package core

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("item no encontrado")
	ErrCajaClosed        = errors.New("la caja está cerrada")
	ErrCajaAlreadyOpen   = errors.New("ya hay una caja abierta")
	ErrCajaAlreadyClosed = errors.New("la caja ya está cerrada")
	ErrEmptyCart         = errors.New("el carrito está vacío")
)

// ValidationError reports a catalog or session field that violates its
// contract (negative price, stock, duration or opening balance).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación: %s %s", e.Field, e.Reason)
}

// InsufficientStockError is returned both at add time (soft check against
// the cart's own lines) and at commit time (authoritative re-check against
// the live store).
type InsufficientStockError struct {
	ProductID string
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: solicitado %d, disponible %d",
		e.Name, e.Requested, e.Available)
}
