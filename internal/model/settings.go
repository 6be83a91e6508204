package model

import "time"

// TicketConfig drives the printed ticket layout. Single row (ID = 1).
type TicketConfig struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	BusinessName  string `json:"business_name"`
	Slogan        string `json:"slogan"`
	Address       string `json:"address"`
	Location      string `json:"location"`
	Phone         string `json:"phone"`
	Website       string `json:"website"`
	FooterMessage string `json:"footer_message"`
}

// DefaultTicketConfig is what tickets render with before the business ever
// saves its own header.
func DefaultTicketConfig() TicketConfig {
	return TicketConfig{
		ID:            1,
		BusinessName:  "MG Control",
		FooterMessage: "¡Gracias por su visita!",
	}
}

// SyncConfig wires the external catalog spreadsheet and the sale push
// endpoint. Single row (ID = 1).
type SyncConfig struct {
	ID uint `gorm:"primaryKey" json:"-"`
	// SheetID identifies the published spreadsheet the pull reads from.
	SheetID  string     `json:"sheet_id"`
	LastPull *time.Time `json:"last_pull"`
	AutoPull bool       `json:"auto_pull"`
	// PushEndpoint receives committed sales, best-effort. Empty disables push.
	PushEndpoint string `json:"push_endpoint"`
}
