package analysisrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/jobverify/internal/domain"
	"github.com/GlebRadaev/jobverify/internal/pg"
)

const analysisColumns = `id, account_id, posting_id, fingerprint, confidence_score, is_authentic, evidence, match_score, suggestions, stages_completed, credits_used, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanAnalysis(row pgx.Row) (*domain.JobAnalysis, error) {
	var a domain.JobAnalysis
	err := row.Scan(&a.ID, &a.AccountID, &a.PostingID, &a.Fingerprint, &a.ConfidenceScore, &a.IsAuthentic,
		&a.Evidence, &a.MatchScore, &a.Suggestions, &a.StagesCompleted, &a.CreditsUsed, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) Insert(ctx context.Context, a *domain.JobAnalysis) error {
	query := `
		INSERT INTO job_analyses (id, account_id, posting_id, fingerprint, confidence_score, is_authentic, evidence, match_score, suggestions, stages_completed, credits_used)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, a.ID, a.AccountID, a.PostingID, a.Fingerprint, a.ConfidenceScore, a.IsAuthentic,
		a.Evidence, a.MatchScore, a.Suggestions, a.StagesCompleted, a.CreditsUsed).Scan(&a.CreatedAt)
	if err != nil {
		zap.L().Error("can't save job analysis", zap.Error(err))
		return err
	}
	return nil
}

// Latest returns the most recent analysis of a fingerprint for the account.
func (r *Repository) Latest(ctx context.Context, accountID int, fingerprint string) (*domain.JobAnalysis, error) {
	query := `
		SELECT ` + analysisColumns + `
		FROM job_analyses
		WHERE account_id = $1 AND fingerprint = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	a, err := scanAnalysis(r.db.QueryRow(ctx, query, accountID, fingerprint))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find job analysis", zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (r *Repository) ListByAccount(ctx context.Context, accountID, limit int) ([]domain.JobAnalysis, error) {
	query := `
		SELECT ` + analysisColumns + `
		FROM job_analyses
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, accountID, limit)
	if err != nil {
		zap.L().Error("can't get job analyses", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var analyses []domain.JobAnalysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			zap.L().Error("can't scan job analysis row", zap.Error(err))
			return nil, err
		}
		analyses = append(analyses, *a)
	}
	return analyses, rows.Err()
}
