package dto

type TicketConfigRequest struct {
	BusinessName  string `json:"business_name"  validate:"required,min=1,max=100"`
	Slogan        string `json:"slogan"         validate:"omitempty,max=150"`
	Address       string `json:"address"        validate:"omitempty,max=200"`
	Location      string `json:"location"       validate:"omitempty,max=100"`
	Phone         string `json:"phone"          validate:"omitempty,max=40"`
	Website       string `json:"website"        validate:"omitempty,max=100"`
	FooterMessage string `json:"footer_message" validate:"omitempty,max=200"`
}
