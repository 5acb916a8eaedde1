package balance

import (
	"context"
	"errors"
	"net/http"

	"github.com/GlebRadaev/jobverify/internal/domain"
	"github.com/GlebRadaev/jobverify/internal/dto"
	"github.com/GlebRadaev/jobverify/internal/service/ledgerservice"
	"github.com/GlebRadaev/jobverify/pkg/auth"
	"github.com/GlebRadaev/jobverify/pkg/utils"
)

//go:generate mockgen -source=balance.go -destination=mock.go -package=balance

type Service interface {
	Balance(ctx context.Context, accountID int) (int, error)
	History(ctx context.Context, accountID int) ([]domain.CreditTransaction, error)
	Audit(ctx context.Context, accountID int) (*ledgerservice.Audit, error)
}

type BalanceHandler struct {
	ledgerService Service
}

func New(ledgerService Service) *BalanceHandler {
	return &BalanceHandler{
		ledgerService: ledgerService,
	}
}

// GetBalance godoc
//
//	@Summary		Get credit balance
//	@Description	Retrieve the credits available to the authenticated account.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO
//	@Failure		401	{object}	utils.Response	"Account not authorized"
//	@Failure		404	{object}	utils.Response	"Account not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	credits, err := h.ledgerService.Balance(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, ledgerservice.ErrAccountNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{Credits: credits})
}

// GetTransactions godoc
//
//	@Summary		List credit transactions
//	@Description	Ledger entries of the authenticated account, newest first.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.TransactionResponseDTO
//	@Success		204	{string}	string			"No transactions"
//	@Failure		401	{object}	utils.Response	"Account not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/transactions [get]
func (h *BalanceHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	transactions, err := h.ledgerService.History(r.Context(), accountID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(transactions) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	response := make([]dto.TransactionResponseDTO, 0, len(transactions))
	for _, t := range transactions {
		response = append(response, dto.NewTransactionResponseDTO(t))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetAudit godoc
//
//	@Summary		Check ledger consistency
//	@Description	Compare the balance with the initial grant plus every settled and pending transaction.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.AuditResponseDTO
//	@Failure		401	{object}	utils.Response	"Account not authorized"
//	@Failure		404	{object}	utils.Response	"Account not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/balance/audit [get]
func (h *BalanceHandler) GetAudit(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	audit, err := h.ledgerService.Audit(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, ledgerservice.ErrAccountNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AuditResponseDTO{
		Credits:    audit.Credits,
		Expected:   audit.Expected,
		Settled:    audit.Settled,
		Pending:    audit.Pending,
		Consistent: audit.Consistent(),
	})
}
