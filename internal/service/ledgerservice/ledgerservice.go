package ledgerservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/jobverify/internal/domain"
	"github.com/GlebRadaev/jobverify/internal/events"
	"github.com/GlebRadaev/jobverify/internal/metrics"
	"github.com/GlebRadaev/jobverify/internal/pg"
)

//go:generate mockgen -source=ledgerservice.go -destination=mock.go -package=ledgerservice

// staleBatch bounds how many expired reservations one Reserve call releases.
const staleBatch = 100

var (
	ErrInsufficientCredits   = errors.New("insufficient credits")
	ErrTransactionNotPending = errors.New("transaction is not pending")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrAccountNotFound       = errors.New("account not found")
	ErrAccountInactive       = errors.New("account is inactive")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrMissingReference      = errors.New("external reference is required")
)

type Repo interface {
	LockAccount(ctx context.Context, accountID int) (*domain.Account, error)
	GetAccount(ctx context.Context, accountID int) (*domain.Account, error)
	AdjustCredits(ctx context.Context, accountID, delta int) (int, error)
	InsertTransaction(ctx context.Context, t *domain.CreditTransaction) (*domain.CreditTransaction, error)
	InsertPurchase(ctx context.Context, t *domain.CreditTransaction) (*domain.CreditTransaction, error)
	TransactionAccount(ctx context.Context, txID int64) (int, error)
	LockTransaction(ctx context.Context, txID int64) (*domain.CreditTransaction, error)
	UpdateTransaction(ctx context.Context, txID int64, status domain.TransactionStatus, amount int) error
	StaleReservations(ctx context.Context, accountID int, before time.Time, limit int) ([]domain.CreditTransaction, error)
	ListTransactions(ctx context.Context, accountID int) ([]domain.CreditTransaction, error)
	Totals(ctx context.Context, accountID int) (settled, pending int, err error)
}

// Audit is the reconciliation view of one account.
type Audit struct {
	Credits  int
	Expected int
	Settled  int
	Pending  int
}

// Consistent reports whether the balance equals the initial grant plus every
// settled and pending amount.
func (a Audit) Consistent() bool {
	return a.Credits == a.Expected
}

type Service struct {
	repo           Repo
	txManager      pg.TXManager
	publisher      events.Publisher
	reservationTTL time.Duration
	now            func() time.Time
}

func New(repo Repo, txManager pg.TXManager, publisher events.Publisher, reservationTTL time.Duration) *Service {
	return &Service{
		repo:           repo,
		txManager:      txManager,
		publisher:      publisher,
		reservationTTL: reservationTTL,
		now:            time.Now,
	}
}

// Reserve holds amount credits for a billed operation. The balance is
// decremented and a pending debit is recorded in one database transaction.
func (s *Service) Reserve(ctx context.Context, accountID, amount int, description string) (*domain.CreditTransaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var (
		reservation *domain.CreditTransaction
		balance     int
		released    int
	)
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		account, err := s.lockActive(ctx, accountID)
		if err != nil {
			return err
		}

		credits := account.Credits
		released, credits, err = s.releaseStale(ctx, accountID, credits)
		if err != nil {
			return err
		}

		if credits < amount {
			return ErrInsufficientCredits
		}

		balance, err = s.repo.AdjustCredits(ctx, accountID, -amount)
		if err != nil {
			return fmt.Errorf("reserve credits: %w", err)
		}
		reservation, err = s.repo.InsertTransaction(ctx, &domain.CreditTransaction{
			AccountID:   accountID,
			Amount:      -amount,
			Kind:        domain.KindDebit,
			Status:      domain.StatusPending,
			Description: description,
		})
		if err != nil {
			return fmt.Errorf("record reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInsufficientCredits) {
			zap.L().Error("can't reserve credits", zap.Int("account_id", accountID), zap.Int("amount", amount), zap.Error(err))
		}
		return nil, err
	}

	if released > 0 {
		metrics.StaleReleased.Add(float64(released))
	}
	metrics.LedgerCredits.WithLabelValues(metrics.OpReserve).Add(float64(amount))
	s.publisher.Publish(events.NewCreditsChanged(accountID, balance, -amount, description))
	zap.L().Debug("credits reserved", zap.Int("account_id", accountID), zap.Int64("tx_id", reservation.ID), zap.Int("amount", amount))
	return reservation, nil
}

func (s *Service) lockActive(ctx context.Context, accountID int) (*domain.Account, error) {
	account, err := s.repo.LockAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("lock account: %w", err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	if !account.IsActive {
		return nil, ErrAccountInactive
	}
	return account, nil
}

// releaseStale cancels the account's expired reservations. The account row
// must already be locked.
func (s *Service) releaseStale(ctx context.Context, accountID, credits int) (int, int, error) {
	stale, err := s.repo.StaleReservations(ctx, accountID, s.now().Add(-s.reservationTTL), staleBatch)
	if err != nil {
		return 0, credits, fmt.Errorf("find stale reservations: %w", err)
	}
	if len(stale) == 0 {
		return 0, credits, nil
	}

	refund := 0
	for _, t := range stale {
		if err := s.repo.UpdateTransaction(ctx, t.ID, domain.StatusCancelled, t.Amount); err != nil {
			return 0, credits, fmt.Errorf("cancel stale reservation: %w", err)
		}
		refund -= t.Amount
	}
	credits, err = s.repo.AdjustCredits(ctx, accountID, refund)
	if err != nil {
		return 0, credits, fmt.Errorf("refund stale reservations: %w", err)
	}
	zap.L().Info("stale reservations released", zap.Int("account_id", accountID), zap.Int("count", len(stale)), zap.Int("credits", refund))
	return len(stale), credits, nil
}

// settle locks the owning account, then the transaction, and runs fn with
// both held. The account-first order matches Reserve.
func (s *Service) settle(ctx context.Context, txID int64, fn func(ctx context.Context, t *domain.CreditTransaction) error) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		accountID, err := s.repo.TransactionAccount(ctx, txID)
		if err != nil {
			return fmt.Errorf("find transaction: %w", err)
		}
		if accountID == 0 {
			return ErrTransactionNotFound
		}
		if _, err := s.repo.LockAccount(ctx, accountID); err != nil {
			return fmt.Errorf("lock account: %w", err)
		}
		t, err := s.repo.LockTransaction(ctx, txID)
		if err != nil {
			return fmt.Errorf("lock transaction: %w", err)
		}
		if t == nil {
			return ErrTransactionNotFound
		}
		return fn(ctx, t)
	})
}

// Commit charges a reservation in full. Committing twice is a no-op.
func (s *Service) Commit(ctx context.Context, txID int64) error {
	var charged int
	err := s.settle(ctx, txID, func(ctx context.Context, t *domain.CreditTransaction) error {
		switch t.Status {
		case domain.StatusSuccess:
			return nil
		case domain.StatusPending:
		default:
			return ErrTransactionNotPending
		}
		charged = -t.Amount
		return s.repo.UpdateTransaction(ctx, txID, domain.StatusSuccess, t.Amount)
	})
	if err != nil {
		zap.L().Error("can't commit reservation", zap.Int64("tx_id", txID), zap.Error(err))
		return err
	}
	if charged > 0 {
		metrics.LedgerCredits.WithLabelValues(metrics.OpCommit).Add(float64(charged))
	}
	return nil
}

// CommitPartial charges used credits of a reservation and returns the rest
// to the balance. used equal to the reservation behaves like Commit.
func (s *Service) CommitPartial(ctx context.Context, txID int64, used int) error {
	if used < 0 {
		return ErrInvalidAmount
	}

	var (
		accountID, balance, refund int
		reason                     string
		committed                  bool
	)
	err := s.settle(ctx, txID, func(ctx context.Context, t *domain.CreditTransaction) error {
		switch t.Status {
		case domain.StatusSuccess:
			return nil
		case domain.StatusPending:
		default:
			return ErrTransactionNotPending
		}
		reserved := -t.Amount
		if used > reserved {
			return fmt.Errorf("%w: used %d exceeds reserved %d", ErrInvalidAmount, used, reserved)
		}

		accountID, reason, committed = t.AccountID, t.Description, true
		refund = reserved - used
		if err := s.repo.UpdateTransaction(ctx, txID, domain.StatusSuccess, -used); err != nil {
			return err
		}
		if refund == 0 {
			return nil
		}
		var err error
		balance, err = s.repo.AdjustCredits(ctx, t.AccountID, refund)
		return err
	})
	if err != nil {
		zap.L().Error("can't commit reservation", zap.Int64("tx_id", txID), zap.Int("used", used), zap.Error(err))
		return err
	}

	if !committed {
		return nil
	}
	metrics.LedgerCredits.WithLabelValues(metrics.OpCommit).Add(float64(used))
	if refund > 0 {
		metrics.LedgerCredits.WithLabelValues(metrics.OpRefund).Add(float64(refund))
		s.publisher.Publish(events.NewCreditsChanged(accountID, balance, refund, reason))
	}
	return nil
}

// Rollback moves a pending reservation to failed or cancelled and returns
// its credits.
func (s *Service) Rollback(ctx context.Context, txID int64, status domain.TransactionStatus) error {
	if status != domain.StatusFailed && status != domain.StatusCancelled {
		return fmt.Errorf("rollback to %q: %w", status, ErrTransactionNotPending)
	}

	var accountID, balance, refund int
	err := s.settle(ctx, txID, func(ctx context.Context, t *domain.CreditTransaction) error {
		if t.Status != domain.StatusPending {
			return ErrTransactionNotPending
		}
		accountID, refund = t.AccountID, -t.Amount
		if err := s.repo.UpdateTransaction(ctx, txID, status, t.Amount); err != nil {
			return err
		}
		var err error
		balance, err = s.repo.AdjustCredits(ctx, t.AccountID, refund)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrTransactionNotPending) {
			zap.L().Error("can't roll back reservation", zap.Int64("tx_id", txID), zap.Error(err))
		}
		return err
	}

	metrics.LedgerCredits.WithLabelValues(metrics.OpRefund).Add(float64(refund))
	s.publisher.Publish(events.NewCreditsChanged(accountID, balance, refund, "reservation "+string(status)))
	zap.L().Info("reservation rolled back", zap.Int64("tx_id", txID), zap.String("status", string(status)))
	return nil
}

// CreditPurchase adds purchased credits once per external reference. A
// replayed reference reports applied=false without an error.
func (s *Service) CreditPurchase(ctx context.Context, accountID, credits int, externalRef string) (bool, error) {
	if credits <= 0 {
		return false, ErrInvalidAmount
	}
	if externalRef == "" {
		return false, ErrMissingReference
	}

	var (
		applied bool
		balance int
	)
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		account, err := s.repo.LockAccount(ctx, accountID)
		if err != nil {
			return fmt.Errorf("lock account: %w", err)
		}
		if account == nil {
			return ErrAccountNotFound
		}

		ref := externalRef
		purchase, err := s.repo.InsertPurchase(ctx, &domain.CreditTransaction{
			AccountID:   accountID,
			Amount:      credits,
			Kind:        domain.KindPurchase,
			Status:      domain.StatusSuccess,
			ExternalRef: &ref,
			Description: "credit purchase",
		})
		if err != nil {
			return fmt.Errorf("record purchase: %w", err)
		}
		if purchase == nil {
			return nil
		}

		applied = true
		balance, err = s.repo.AdjustCredits(ctx, accountID, credits)
		return err
	})
	if err != nil {
		zap.L().Error("can't credit purchase", zap.Int("account_id", accountID), zap.String("external_reference", externalRef), zap.Error(err))
		return false, err
	}
	if !applied {
		zap.L().Info("purchase already applied", zap.String("external_reference", externalRef))
		return false, nil
	}

	metrics.LedgerCredits.WithLabelValues(metrics.OpPurchase).Add(float64(credits))
	s.publisher.Publish(events.NewCreditsChanged(accountID, balance, credits, "credit purchase"))
	s.publisher.Publish(events.NewPaymentCompleted(accountID, externalRef, credits))
	return true, nil
}

func (s *Service) Balance(ctx context.Context, accountID int) (int, error) {
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if account == nil {
		return 0, ErrAccountNotFound
	}
	return account.Credits, nil
}

func (s *Service) History(ctx context.Context, accountID int) ([]domain.CreditTransaction, error) {
	return s.repo.ListTransactions(ctx, accountID)
}

// Audit reads the balance and the ledger totals under the account lock.
func (s *Service) Audit(ctx context.Context, accountID int) (*Audit, error) {
	var audit Audit
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		account, err := s.repo.LockAccount(ctx, accountID)
		if err != nil {
			return fmt.Errorf("lock account: %w", err)
		}
		if account == nil {
			return ErrAccountNotFound
		}
		settled, pending, err := s.repo.Totals(ctx, accountID)
		if err != nil {
			return fmt.Errorf("sum transactions: %w", err)
		}
		audit = Audit{
			Credits:  account.Credits,
			Expected: domain.InitialCredits + settled + pending,
			Settled:  settled,
			Pending:  pending,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !audit.Consistent() {
		zap.L().Error("ledger out of balance", zap.Int("account_id", accountID), zap.Int("credits", audit.Credits), zap.Int("expected", audit.Expected))
	}
	return &audit, nil
}

// StaleReservations lists pending reservations older than olderThan across
// all accounts.
func (s *Service) StaleReservations(ctx context.Context, olderThan time.Duration, limit int) ([]domain.CreditTransaction, error) {
	return s.repo.StaleReservations(ctx, 0, s.now().Add(-olderThan), limit)
}
