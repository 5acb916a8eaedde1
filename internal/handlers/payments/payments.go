package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/GlebRadaev/jobverify/internal/dto"
	"github.com/GlebRadaev/jobverify/internal/service/ledgerservice"
	"github.com/GlebRadaev/jobverify/pkg/utils"
)

//go:generate mockgen -source=payments.go -destination=mock.go -package=payments

const (
	SignatureHeader = "X-Signature"
	maxBodyBytes    = 1 << 20
)

type Service interface {
	CreditPurchase(ctx context.Context, accountID, credits int, externalRef string) (bool, error)
}

type PaymentHandler struct {
	ledgerService Service
	secret        []byte
}

// New builds the webhook handler. An empty secret disables signature checks.
func New(ledgerService Service, secret string) *PaymentHandler {
	return &PaymentHandler{
		ledgerService: ledgerService,
		secret:        []byte(secret),
	}
}

// Sign returns the hex HMAC-SHA256 of body that the provider sends in
// the X-Signature header.
func Sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Webhook godoc
//
//	@Summary		Payment provider webhook
//	@Description	Credits purchased credits to an account. Redelivered events with a known external_reference are acknowledged without crediting twice.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			X-Signature	header		string					false	"hex HMAC-SHA256 of the body"
//	@Param			request		body		dto.WebhookRequestDTO	true	"Payment event"
//	@Success		200			{object}	dto.WebhookResponseDTO
//	@Failure		400			{object}	utils.Response	"Invalid request body"
//	@Failure		401			{object}	utils.Response	"Invalid signature"
//	@Failure		404			{object}	utils.Response	"Account not found"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/payments/webhook [post]
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(h.secret) > 0 {
		got := strings.ToLower(r.Header.Get(SignatureHeader))
		if !hmac.Equal([]byte(got), []byte(Sign(h.secret, body))) {
			zap.L().Warn("webhook signature mismatch", zap.String("remote_addr", r.RemoteAddr))
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid signature")
			return
		}
	}

	var req dto.WebhookRequestDTO
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, dto.ValidationMessage(err))
		return
	}

	if req.EventType != dto.EventPaymentSucceeded {
		utils.RespondWithJSON(w, http.StatusOK, dto.WebhookResponseDTO{
			Applied: false,
			Message: "event ignored",
		})
		return
	}

	applied, err := h.ledgerService.CreditPurchase(r.Context(), req.AccountID, req.Credits, req.ExternalReference)
	if err != nil {
		switch {
		case errors.Is(err, ledgerservice.ErrAccountNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Account not found")
		case errors.Is(err, ledgerservice.ErrInvalidAmount), errors.Is(err, ledgerservice.ErrMissingReference):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	resp := dto.WebhookResponseDTO{Applied: applied, Message: "credits added"}
	if !applied {
		resp.Message = "already processed"
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
