package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateAppointmentRequest struct {
	ClientName string          `json:"client_name" validate:"required,min=2,max=200"`
	ServiceID  string          `json:"service_id"  validate:"required,min=1"`
	StaffID    *string         `json:"staff_id"    validate:"omitempty,uuid"`
	Date       string          `json:"date"        validate:"required"` // RFC 3339
	Deposit    decimal.Decimal `json:"deposit"     validate:"min=0"`
	Notes      string          `json:"notes"       validate:"omitempty,max=500"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
}

type AppointmentFilter struct {
	Date   string `form:"date"` // YYYY-MM-DD
	Status string `form:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AppointmentResponse struct {
	ID          string          `json:"id"`
	ClientName  string          `json:"client_name"`
	ServiceID   string          `json:"service_id"`
	ServiceName string          `json:"service_name"`
	StaffID     *string         `json:"staff_id"`
	Date        string          `json:"date"`
	Deposit     decimal.Decimal `json:"deposit"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes"`
}
