package dto

const EventPaymentSucceeded = "payment_succeeded"

type WebhookRequestDTO struct {
	EventType         string `json:"event_type" validate:"required" example:"payment_succeeded"`
	ExternalReference string `json:"external_reference" validate:"required,max=255" example:"pi_3NkX"`
	Credits           int    `json:"credits" validate:"gte=0" example:"100"`
	AccountID         int    `json:"account_id" validate:"required,gt=0" example:"1"`
}

type WebhookResponseDTO struct {
	Applied bool   `json:"applied"`
	Message string `json:"message"`
}
