package resumerepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/jobverify/internal/domain"
	"github.com/GlebRadaev/jobverify/internal/pg"
)

const (
	resumeColumns   = `id, account_id, filename, content, target_posting_id, experience_level, created_at`
	analysisColumns = `id, resume_id, target_posting_id, match_score, recommended_tips, credits_used, created_at`
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanResume(row pgx.Row) (*domain.Resume, error) {
	var r domain.Resume
	err := row.Scan(&r.ID, &r.AccountID, &r.Filename, &r.Content, &r.TargetPostingID, &r.ExperienceLevel, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func scanAnalysis(row pgx.Row) (*domain.ResumeAnalysis, error) {
	var a domain.ResumeAnalysis
	err := row.Scan(&a.ID, &a.ResumeID, &a.TargetPostingID, &a.MatchScore, &a.RecommendedTips, &a.CreditsUsed, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) Create(ctx context.Context, resume *domain.Resume) (*domain.Resume, error) {
	query := `
		INSERT INTO resumes (id, account_id, filename, content, target_posting_id, experience_level)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, resume.ID, resume.AccountID, resume.Filename, resume.Content, resume.TargetPostingID, resume.ExperienceLevel).
		Scan(&resume.CreatedAt)
	if err != nil {
		zap.L().Error("can't save resume", zap.Error(err))
		return nil, err
	}
	return resume, nil
}

func (r *Repository) FindByID(ctx context.Context, accountID int, id uuid.UUID) (*domain.Resume, error) {
	query := `
		SELECT ` + resumeColumns + `
		FROM resumes
		WHERE account_id = $1 AND id = $2
	`
	resume, err := scanResume(r.db.QueryRow(ctx, query, accountID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find resume", zap.Error(err))
		return nil, err
	}
	return resume, nil
}

func (r *Repository) ListByAccount(ctx context.Context, accountID int) ([]domain.Resume, error) {
	query := `
		SELECT ` + resumeColumns + `
		FROM resumes
		WHERE account_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		zap.L().Error("can't get resumes", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var resumes []domain.Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			zap.L().Error("can't scan resume row", zap.Error(err))
			return nil, err
		}
		resumes = append(resumes, *resume)
	}
	return resumes, rows.Err()
}

// SetTarget points a resume at a posting, or clears the target when nil.
// It reports whether the resume exists for the account.
func (r *Repository) SetTarget(ctx context.Context, accountID int, id uuid.UUID, target *uuid.UUID) (bool, error) {
	query := `
		UPDATE resumes
		SET target_posting_id = $1
		WHERE account_id = $2 AND id = $3
	`
	tag, err := r.db.Exec(ctx, query, target, accountID, id)
	if err != nil {
		zap.L().Error("can't set resume target", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) InsertAnalysis(ctx context.Context, a *domain.ResumeAnalysis) error {
	query := `
		INSERT INTO resume_analyses (id, resume_id, target_posting_id, match_score, recommended_tips, credits_used)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, a.ID, a.ResumeID, a.TargetPostingID, a.MatchScore, a.RecommendedTips, a.CreditsUsed).
		Scan(&a.CreatedAt)
	if err != nil {
		zap.L().Error("can't save resume analysis", zap.Error(err))
		return err
	}
	return nil
}

// LatestAnalysis returns the newest analysis for the (resume, target) pair;
// a nil target matches analyses made without one.
func (r *Repository) LatestAnalysis(ctx context.Context, resumeID uuid.UUID, target *uuid.UUID) (*domain.ResumeAnalysis, error) {
	query := `
		SELECT ` + analysisColumns + `
		FROM resume_analyses
		WHERE resume_id = $1 AND target_posting_id IS NOT DISTINCT FROM $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	a, err := scanAnalysis(r.db.QueryRow(ctx, query, resumeID, target))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find resume analysis", zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (r *Repository) ListAnalyses(ctx context.Context, resumeID uuid.UUID) ([]domain.ResumeAnalysis, error) {
	query := `
		SELECT ` + analysisColumns + `
		FROM resume_analyses
		WHERE resume_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, resumeID)
	if err != nil {
		zap.L().Error("can't get resume analyses", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var analyses []domain.ResumeAnalysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			zap.L().Error("can't scan resume analysis row", zap.Error(err))
			return nil, err
		}
		analyses = append(analyses, *a)
	}
	return analyses, rows.Err()
}
