package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AddCartItemRequest struct {
	RefID string `json:"ref_id" validate:"required,min=1"`
	Kind  string `json:"kind"   validate:"required,oneof=PRODUCT SERVICE"`
}

type CommitSaleRequest struct {
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=CASH CARD TRANSFER"`
	ClientLabel   string          `json:"client_label"   validate:"omitempty,max=200"`
	Deposit       decimal.Decimal `json:"deposit"        validate:"min=0"`
	// AppointmentID links the sale to a booked appointment: the appointment's
	// deposit is applied and the appointment is marked completed.
	AppointmentID *string `json:"appointment_id" validate:"omitempty,uuid"`
}

type SaleFilter struct {
	From string `form:"from"` // YYYY-MM-DD; empty = today
	To   string `form:"to"`   // YYYY-MM-DD; empty = from
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CartLineResponse struct {
	Index    int             `json:"index"`
	RefID    string          `json:"ref_id"`
	Name     string          `json:"name"`
	Kind     string          `json:"kind"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Total decimal.Decimal    `json:"total"`
}

type SaleItemResponse struct {
	RefID    string          `json:"ref_id"`
	Name     string          `json:"name"`
	Kind     string          `json:"kind"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type SaleResponse struct {
	ID            string             `json:"id"`
	Timestamp     string             `json:"timestamp"`
	Items         []SaleItemResponse `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	OperatorID    string             `json:"operator_id"`
	ClientLabel   string             `json:"client_label"`
	Deposit       decimal.Decimal    `json:"deposit"`
	AmountDue     decimal.Decimal    `json:"amount_due"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int            `json:"total"`
}
