package resumeservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/GlebRadaev/jobverify/internal/domain"
	"github.com/GlebRadaev/jobverify/internal/events"
	"github.com/GlebRadaev/jobverify/internal/fingerprint"
	"github.com/GlebRadaev/jobverify/internal/metrics"
	"github.com/GlebRadaev/jobverify/internal/pg"
	"github.com/GlebRadaev/jobverify/internal/pipeline"
)

//go:generate mockgen -source=resumeservice.go -destination=mock.go -package=resumeservice

const kind = "resume"

var (
	ErrExternalServiceUnavailable = errors.New("external service unavailable")
	ErrResumeNotFound             = errors.New("resume not found")
	ErrPostingNotFound            = errors.New("target posting not found")
	ErrEmptyResume                = errors.New("resume content is empty")

	errAbandoned = errors.New("shared analysis abandoned by its caller")
)

type ResumeRepo interface {
	Create(ctx context.Context, resume *domain.Resume) (*domain.Resume, error)
	FindByID(ctx context.Context, accountID int, id uuid.UUID) (*domain.Resume, error)
	ListByAccount(ctx context.Context, accountID int) ([]domain.Resume, error)
	SetTarget(ctx context.Context, accountID int, id uuid.UUID, target *uuid.UUID) (bool, error)
	InsertAnalysis(ctx context.Context, a *domain.ResumeAnalysis) error
	LatestAnalysis(ctx context.Context, resumeID uuid.UUID, target *uuid.UUID) (*domain.ResumeAnalysis, error)
	ListAnalyses(ctx context.Context, resumeID uuid.UUID) ([]domain.ResumeAnalysis, error)
}

type PostingRepo interface {
	FindByID(ctx context.Context, accountID int, id uuid.UUID) (*domain.JobPosting, error)
}

type Ledger interface {
	Reserve(ctx context.Context, accountID, amount int, description string) (*domain.CreditTransaction, error)
	CommitPartial(ctx context.Context, txID int64, used int) error
	Rollback(ctx context.Context, txID int64, status domain.TransactionStatus) error
}

type Chain interface {
	MaxCost() int
	Run(ctx context.Context, state *pipeline.ResumeState) (pipeline.Outcome, error)
}

type Result struct {
	Analysis    *domain.ResumeAnalysis
	Cached      bool
	CreditsUsed int
}

type Service struct {
	resumes   ResumeRepo
	postings  PostingRepo
	ledger    Ledger
	chain     Chain
	txManager pg.TXManager
	publisher events.Publisher
	group     singleflight.Group
}

func New(resumes ResumeRepo, postings PostingRepo, ledger Ledger, chain Chain, txManager pg.TXManager, publisher events.Publisher) *Service {
	return &Service{
		resumes:   resumes,
		postings:  postings,
		ledger:    ledger,
		chain:     chain,
		txManager: txManager,
		publisher: publisher,
	}
}

func (s *Service) Create(ctx context.Context, accountID int, resume domain.Resume) (*domain.Resume, error) {
	if strings.TrimSpace(resume.Content) == "" {
		return nil, ErrEmptyResume
	}
	if resume.TargetPostingID != nil {
		if _, err := s.targetPosting(ctx, accountID, *resume.TargetPostingID); err != nil {
			return nil, err
		}
	}

	if resume.ExperienceLevel == "" {
		resume.ExperienceLevel = domain.LevelMidSenior
	}

	resume.ID = uuid.New()
	resume.AccountID = accountID
	created, err := s.resumes.Create(ctx, &resume)
	if err != nil {
		zap.L().Error("can't create resume", zap.Int("account_id", accountID), zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, accountID int, id uuid.UUID) (*domain.Resume, error) {
	resume, err := s.resumes.FindByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, ErrResumeNotFound
	}
	return resume, nil
}

func (s *Service) List(ctx context.Context, accountID int) ([]domain.Resume, error) {
	return s.resumes.ListByAccount(ctx, accountID)
}

// SetTarget points a resume at one of the account's bookmarked postings.
// A nil target clears it.
func (s *Service) SetTarget(ctx context.Context, accountID int, id uuid.UUID, target *uuid.UUID) error {
	if target != nil {
		if _, err := s.targetPosting(ctx, accountID, *target); err != nil {
			return err
		}
	}
	ok, err := s.resumes.SetTarget(ctx, accountID, id, target)
	if err != nil {
		return err
	}
	if !ok {
		return ErrResumeNotFound
	}
	return nil
}

func (s *Service) Analyses(ctx context.Context, accountID int, id uuid.UUID) ([]domain.ResumeAnalysis, error) {
	if _, err := s.Get(ctx, accountID, id); err != nil {
		return nil, err
	}
	return s.resumes.ListAnalyses(ctx, id)
}

// Analyze returns improvement tips for a resume against its current target.
// The latest stored result for the same (resume, target) pair is returned
// free of charge unless force is set; a forced run always bills and appends.
func (s *Service) Analyze(ctx context.Context, accountID int, id uuid.UUID, force bool) (*Result, error) {
	resume, err := s.Get(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	if force {
		return s.analyze(ctx, accountID, resume, true)
	}

	key := fingerprint.Resume(resume.ID, resume.TargetPostingID)
	for {
		executed := false
		var ownErr error
		v, err, _ := s.group.Do(key, func() (any, error) {
			executed = true
			res, err := s.analyze(ctx, accountID, resume, false)
			if err != nil && ctx.Err() != nil {
				ownErr = err
				return nil, fmt.Errorf("%w: %w", errAbandoned, err)
			}
			return res, err
		})
		if executed {
			if ownErr != nil {
				return nil, ownErr
			}
			if err != nil {
				return nil, err
			}
			return v.(*Result), nil
		}
		// The request running the shared analysis went away; run it under this one.
		if errors.Is(err, errAbandoned) && ctx.Err() == nil {
			continue
		}
		if err != nil {
			return nil, err
		}

		res := v.(*Result)
		metrics.CacheHits.WithLabelValues(kind).Inc()
		return &Result{Analysis: res.Analysis, Cached: true}, nil
	}
}

func (s *Service) analyze(ctx context.Context, accountID int, resume *domain.Resume, force bool) (*Result, error) {
	if !force {
		latest, err := s.resumes.LatestAnalysis(ctx, resume.ID, resume.TargetPostingID)
		if err != nil {
			return nil, err
		}
		if latest != nil {
			metrics.CacheHits.WithLabelValues(kind).Inc()
			return &Result{Analysis: latest, Cached: true}, nil
		}
	}

	state := &pipeline.ResumeState{
		ResumeText: resume.Content,
		Level:      string(resume.ExperienceLevel),
	}
	if resume.TargetPostingID != nil {
		posting, err := s.targetPosting(ctx, accountID, *resume.TargetPostingID)
		if err != nil {
			return nil, err
		}
		state.Target = &pipeline.ResumeTarget{
			Title:       posting.Title,
			Company:     posting.Company,
			Description: posting.Description,
		}
	}

	reservation, err := s.ledger.Reserve(ctx, accountID, s.chain.MaxCost(), "resume analysis: "+resume.Filename)
	if err != nil {
		return nil, err
	}

	outcome, err := s.chain.Run(ctx, state)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues(kind, metrics.OutcomeFailed).Inc()
		if ctx.Err() != nil {
			s.release(ctx, reservation.ID, domain.StatusCancelled)
			return nil, ctx.Err()
		}
		s.release(ctx, reservation.ID, domain.StatusFailed)
		return nil, fmt.Errorf("%w: %v", ErrExternalServiceUnavailable, err)
	}

	analysis := &domain.ResumeAnalysis{
		ID:              uuid.New(),
		ResumeID:        resume.ID,
		TargetPostingID: resume.TargetPostingID,
		MatchScore:      state.MatchScore,
		RecommendedTips: state.Tips,
		CreditsUsed:     outcome.Cost,
	}
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := analysis.Validate(); err != nil {
			return err
		}
		if err := s.resumes.InsertAnalysis(ctx, analysis); err != nil {
			return fmt.Errorf("save analysis: %w", err)
		}
		return s.ledger.CommitPartial(ctx, reservation.ID, outcome.Cost)
	})
	if err != nil {
		zap.L().Error("can't store resume analysis", zap.String("resume_id", resume.ID.String()), zap.Error(err))
		s.release(ctx, reservation.ID, domain.StatusFailed)
		return nil, err
	}

	metrics.PipelineRuns.WithLabelValues(kind, metrics.OutcomeCompleted).Inc()
	s.publisher.Publish(events.NewAnalysisCompleted(accountID, events.AnalysisCompleted{
		Kind:        kind,
		ResultID:    analysis.ID.String(),
		CreditsUsed: outcome.Cost,
	}))
	return &Result{Analysis: analysis, CreditsUsed: outcome.Cost}, nil
}

func (s *Service) targetPosting(ctx context.Context, accountID int, id uuid.UUID) (*domain.JobPosting, error) {
	posting, err := s.postings.FindByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if posting == nil {
		return nil, ErrPostingNotFound
	}
	return posting, nil
}

func (s *Service) release(ctx context.Context, txID int64, status domain.TransactionStatus) {
	if err := s.ledger.Rollback(context.WithoutCancel(ctx), txID, status); err != nil {
		zap.L().Error("can't release reservation", zap.Int64("tx_id", txID), zap.String("status", string(status)), zap.Error(err))
	}
}
