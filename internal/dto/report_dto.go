package dto

import "github.com/shopspring/decimal"

type ReportFilter struct {
	From   string `form:"from"` // YYYY-MM-DD; empty = today
	To     string `form:"to"`
	Format string `form:"format,default=csv" validate:"omitempty,oneof=csv xlsx"`
}

type SummaryResponse struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	SaleCount int             `json:"sale_count"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
	Cash      decimal.Decimal `json:"cash"`
	Card      decimal.Decimal `json:"card"`
	Transfer  decimal.Decimal `json:"transfer"`
	Deposits  decimal.Decimal `json:"deposits"`
}
