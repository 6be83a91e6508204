package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenCajaRequest struct {
	OpeningBalance decimal.Decimal `json:"opening_balance" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CajaSessionResponse struct {
	ID                  string          `json:"id"`
	IsOpen              bool            `json:"is_open"`
	OpenedAt            string          `json:"opened_at"`
	ClosedAt            *string         `json:"closed_at"`
	OpenedBy            string          `json:"opened_by"`
	OpeningBalance      decimal.Decimal `json:"opening_balance"`
	NetSales            decimal.Decimal `json:"net_sales"`
	SaleCount           int             `json:"sale_count"`
	EstimatedCashOnHand decimal.Decimal `json:"estimated_cash_on_hand"`
}

type CajaHistoryResponse struct {
	Data []CajaSessionResponse `json:"data"`
}
