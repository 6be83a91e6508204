package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SyncConfigRequest struct {
	SheetID      string `json:"sheet_id"      validate:"required,min=1"`
	AutoPull     bool   `json:"auto_pull"`
	PushEndpoint string `json:"push_endpoint" validate:"omitempty,url"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SyncConfigResponse struct {
	SheetID      string  `json:"sheet_id"`
	LastPull     *string `json:"last_pull"`
	AutoPull     bool    `json:"auto_pull"`
	PushEndpoint string  `json:"push_endpoint"`
}

type PullResultResponse struct {
	Products int    `json:"products"`
	Skipped  int    `json:"skipped"`
	PulledAt string `json:"pulled_at"`
}
