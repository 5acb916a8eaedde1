package postingrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/jobverify/internal/domain"
	"github.com/GlebRadaev/jobverify/internal/pg"
)

const postingColumns = `id, account_id, title, company, location, description, source, source_url, fingerprint, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanPosting(row pgx.Row) (*domain.JobPosting, error) {
	var p domain.JobPosting
	err := row.Scan(&p.ID, &p.AccountID, &p.Title, &p.Company, &p.Location, &p.Description, &p.Source, &p.SourceURL, &p.Fingerprint, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Insert bookmarks a posting. When the account already holds a posting with
// the same fingerprint nothing is written and (nil, nil) is returned.
func (r *Repository) Insert(ctx context.Context, p *domain.JobPosting) (*domain.JobPosting, error) {
	query := `
		INSERT INTO job_postings (id, account_id, title, company, location, description, source, source_url, fingerprint)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (account_id, fingerprint) DO NOTHING
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, p.ID, p.AccountID, p.Title, p.Company, p.Location, p.Description, p.Source, p.SourceURL, p.Fingerprint).
		Scan(&p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't save job posting", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *Repository) FindByFingerprint(ctx context.Context, accountID int, fingerprint string) (*domain.JobPosting, error) {
	query := `
		SELECT ` + postingColumns + `
		FROM job_postings
		WHERE account_id = $1 AND fingerprint = $2
	`
	p, err := scanPosting(r.db.QueryRow(ctx, query, accountID, fingerprint))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find job posting by fingerprint", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *Repository) FindByID(ctx context.Context, accountID int, id uuid.UUID) (*domain.JobPosting, error) {
	query := `
		SELECT ` + postingColumns + `
		FROM job_postings
		WHERE account_id = $1 AND id = $2
	`
	p, err := scanPosting(r.db.QueryRow(ctx, query, accountID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find job posting", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *Repository) ListByAccount(ctx context.Context, accountID int) ([]domain.JobPosting, error) {
	query := `
		SELECT ` + postingColumns + `
		FROM job_postings
		WHERE account_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		zap.L().Error("can't get job postings", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var postings []domain.JobPosting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			zap.L().Error("can't scan job posting row", zap.Error(err))
			return nil, err
		}
		postings = append(postings, *p)
	}
	return postings, rows.Err()
}
