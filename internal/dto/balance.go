package dto

import (
	"time"

	"github.com/GlebRadaev/jobverify/internal/domain"
)

type BalanceResponseDTO struct {
	Credits int `json:"credits" example:"48"`
}

type TransactionResponseDTO struct {
	ID                int64     `json:"id" example:"12"`
	Amount            int       `json:"amount" example:"-2"`
	Kind              string    `json:"kind" example:"debit"`
	Status            string    `json:"status" example:"success"`
	ExternalReference *string   `json:"external_reference,omitempty" example:"pi_3NkX"`
	Description       string    `json:"description" example:"job analysis"`
	CreatedAt         time.Time `json:"created_at" example:"2024-05-01T10:00:00Z"`
	UpdatedAt         time.Time `json:"updated_at" example:"2024-05-01T10:00:02Z"`
}

func NewTransactionResponseDTO(t domain.CreditTransaction) TransactionResponseDTO {
	return TransactionResponseDTO{
		ID:                t.ID,
		Amount:            t.Amount,
		Kind:              string(t.Kind),
		Status:            string(t.Status),
		ExternalReference: t.ExternalRef,
		Description:       t.Description,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

type AuditResponseDTO struct {
	Credits    int  `json:"credits" example:"48"`
	Expected   int  `json:"expected" example:"48"`
	Settled    int  `json:"settled" example:"-2"`
	Pending    int  `json:"pending" example:"0"`
	Consistent bool `json:"consistent" example:"true"`
}
