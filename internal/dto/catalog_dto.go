package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type UpsertProductRequest struct {
	ID       string          `json:"id"        validate:"required,min=1"`
	Name     string          `json:"name"      validate:"required,min=1,max=200"`
	Price    decimal.Decimal `json:"price"     validate:"required"`
	Stock    int             `json:"stock"     validate:"min=0"`
	MinStock int             `json:"min_stock" validate:"min=0"`
	Category string          `json:"category"`
}

type UpsertServiceRequest struct {
	ID       string          `json:"id"       validate:"required,min=1"`
	Name     string          `json:"name"     validate:"required,min=1,max=200"`
	Price    decimal.Decimal `json:"price"    validate:"required"`
	Duration int             `json:"duration" validate:"min=0"` // minutes
	Category string          `json:"category"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	MinStock int             `json:"min_stock"`
	Category string          `json:"category"`
	LowStock bool            `json:"low_stock"`
}

type ServiceResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Duration int             `json:"duration"`
	Category string          `json:"category"`
}
