package ledgerrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/jobverify/internal/domain"
	"github.com/GlebRadaev/jobverify/internal/pg"
)

const transactionColumns = `id, account_id, amount, kind, status, external_reference, description, created_at, updated_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(&account.ID, &account.Login, &account.Credits, &account.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func scanTransaction(row pgx.Row) (*domain.CreditTransaction, error) {
	var t domain.CreditTransaction
	err := row.Scan(&t.ID, &t.AccountID, &t.Amount, &t.Kind, &t.Status, &t.ExternalRef, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTransactions(rows pgx.Rows) ([]domain.CreditTransaction, error) {
	defer rows.Close()

	var transactions []domain.CreditTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}

// LockAccount reads the account row and holds it until the surrounding
// transaction ends.
func (r *Repository) LockAccount(ctx context.Context, accountID int) (*domain.Account, error) {
	query := `
		SELECT id, login, credits, is_active
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`
	account, err := scanAccount(r.db.QueryRow(ctx, query, accountID))
	if err != nil {
		zap.L().Error("can't lock account", zap.Int("account_id", accountID), zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (r *Repository) GetAccount(ctx context.Context, accountID int) (*domain.Account, error) {
	query := `
		SELECT id, login, credits, is_active
		FROM accounts
		WHERE id = $1
	`
	account, err := scanAccount(r.db.QueryRow(ctx, query, accountID))
	if err != nil {
		zap.L().Error("can't get account", zap.Int("account_id", accountID), zap.Error(err))
		return nil, err
	}
	return account, nil
}

// AdjustCredits adds delta to the balance and returns the new balance.
func (r *Repository) AdjustCredits(ctx context.Context, accountID, delta int) (int, error) {
	query := `
		UPDATE accounts
		SET credits = credits + $1
		WHERE id = $2
		RETURNING credits
	`
	var credits int
	if err := r.db.QueryRow(ctx, query, delta, accountID).Scan(&credits); err != nil {
		zap.L().Error("can't adjust credits", zap.Int("account_id", accountID), zap.Int("delta", delta), zap.Error(err))
		return 0, err
	}
	return credits, nil
}

func (r *Repository) InsertTransaction(ctx context.Context, t *domain.CreditTransaction) (*domain.CreditTransaction, error) {
	query := `
		INSERT INTO credit_transactions (account_id, amount, kind, status, external_reference, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, t.AccountID, t.Amount, t.Kind, t.Status, t.ExternalRef, t.Description).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		zap.L().Error("can't insert credit transaction", zap.Error(err))
		return nil, err
	}
	return t, nil
}

// InsertPurchase records a purchase once per external reference. A replayed
// reference yields (nil, nil).
func (r *Repository) InsertPurchase(ctx context.Context, t *domain.CreditTransaction) (*domain.CreditTransaction, error) {
	query := `
		INSERT INTO credit_transactions (account_id, amount, kind, status, external_reference, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (external_reference) DO NOTHING
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, t.AccountID, t.Amount, t.Kind, t.Status, t.ExternalRef, t.Description).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't insert purchase", zap.Error(err))
		return nil, err
	}
	return t, nil
}

// TransactionAccount returns the owner of txID, or 0 when it does not exist.
func (r *Repository) TransactionAccount(ctx context.Context, txID int64) (int, error) {
	query := `SELECT account_id FROM credit_transactions WHERE id = $1`

	var accountID int
	if err := r.db.QueryRow(ctx, query, txID).Scan(&accountID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		zap.L().Error("can't get transaction owner", zap.Int64("tx_id", txID), zap.Error(err))
		return 0, err
	}
	return accountID, nil
}

func (r *Repository) LockTransaction(ctx context.Context, txID int64) (*domain.CreditTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM credit_transactions
		WHERE id = $1
		FOR UPDATE
	`
	t, err := scanTransaction(r.db.QueryRow(ctx, query, txID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't lock transaction", zap.Int64("tx_id", txID), zap.Error(err))
		return nil, err
	}
	return t, nil
}

func (r *Repository) UpdateTransaction(ctx context.Context, txID int64, status domain.TransactionStatus, amount int) error {
	query := `
		UPDATE credit_transactions
		SET status = $1, amount = $2, updated_at = NOW()
		WHERE id = $3
	`
	if _, err := r.db.Exec(ctx, query, status, amount, txID); err != nil {
		zap.L().Error("can't update transaction", zap.Int64("tx_id", txID), zap.Error(err))
		return err
	}
	return nil
}

// StaleReservations lists pending debits created before the given time,
// oldest first. accountID 0 spans every account.
func (r *Repository) StaleReservations(ctx context.Context, accountID int, before time.Time, limit int) ([]domain.CreditTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM credit_transactions
		WHERE status = 'pending' AND created_at < $1 AND ($2 = 0 OR account_id = $2)
		ORDER BY created_at ASC
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, before, accountID, limit)
	if err != nil {
		zap.L().Error("can't get stale reservations", zap.Error(err))
		return nil, err
	}
	transactions, err := collectTransactions(rows)
	if err != nil {
		zap.L().Error("can't scan stale reservation", zap.Error(err))
		return nil, err
	}
	return transactions, nil
}

func (r *Repository) ListTransactions(ctx context.Context, accountID int) ([]domain.CreditTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM credit_transactions
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		zap.L().Error("can't get transactions", zap.Error(err))
		return nil, err
	}
	transactions, err := collectTransactions(rows)
	if err != nil {
		zap.L().Error("can't scan transaction row", zap.Error(err))
		return nil, err
	}
	return transactions, nil
}

// Totals sums the signed amounts of settled and pending transactions.
func (r *Repository) Totals(ctx context.Context, accountID int) (settled, pending int, err error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE status = 'success'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'pending'), 0)
		FROM credit_transactions
		WHERE account_id = $1
	`
	if err = r.db.QueryRow(ctx, query, accountID).Scan(&settled, &pending); err != nil {
		zap.L().Error("can't sum transactions", zap.Int("account_id", accountID), zap.Error(err))
		return 0, 0, err
	}
	return settled, pending, nil
}
