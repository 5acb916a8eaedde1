package accountrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/GlebRadaev/jobverify/internal/domain"
	"github.com/GlebRadaev/jobverify/internal/pg"
)

const uniqueViolation = "23505"

var ErrLoginTaken = errors.New("login already taken")

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) FindByLogin(ctx context.Context, login string) (*domain.Account, error) {
	query := `
		SELECT id, login, password_hash, credits, is_active, created_at
		FROM accounts
		WHERE login = $1
	`
	var account domain.Account
	err := repo.db.QueryRow(ctx, query, login).Scan(
		&account.ID, &account.Login, &account.PasswordHash, &account.Credits, &account.IsActive, &account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find account", zap.Error(err))
		return nil, err
	}
	return &account, nil
}

// Create stores a new account. The initial credit grant comes from the
// column default.
func (repo *Repository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (login, password_hash)
		VALUES ($1, $2)
		RETURNING id, credits, is_active, created_at
	`
	err := repo.db.QueryRow(ctx, query, account.Login, account.PasswordHash).Scan(
		&account.ID, &account.Credits, &account.IsActive, &account.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrLoginTaken
		}
		zap.L().Error("can't save account", zap.Error(err))
		return nil, err
	}
	return account, nil
}
