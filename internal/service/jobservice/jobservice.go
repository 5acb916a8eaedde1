package jobservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
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
	"github.com/GlebRadaev/jobverify/internal/scraper"
)

//go:generate mockgen -source=jobservice.go -destination=mock.go -package=jobservice

const (
	kind         = "job"
	historyLimit = 50
)

var (
	ErrExternalServiceUnavailable = errors.New("external service unavailable")
	ErrInvalidSubmission          = errors.New("title, company and description are required")
	ErrInvalidURL                 = errors.New("invalid job url")

	errAbandoned = errors.New("shared analysis abandoned by its caller")
)

type PostingRepo interface {
	Insert(ctx context.Context, p *domain.JobPosting) (*domain.JobPosting, error)
	FindByFingerprint(ctx context.Context, accountID int, fingerprint string) (*domain.JobPosting, error)
	ListByAccount(ctx context.Context, accountID int) ([]domain.JobPosting, error)
}

type AnalysisRepo interface {
	Insert(ctx context.Context, a *domain.JobAnalysis) error
	Latest(ctx context.Context, accountID int, fingerprint string) (*domain.JobAnalysis, error)
	ListByAccount(ctx context.Context, accountID, limit int) ([]domain.JobAnalysis, error)
}

type Ledger interface {
	Reserve(ctx context.Context, accountID, amount int, description string) (*domain.CreditTransaction, error)
	CommitPartial(ctx context.Context, txID int64, used int) error
	Rollback(ctx context.Context, txID int64, status domain.TransactionStatus) error
}

type Chain interface {
	MaxCost() int
	Run(ctx context.Context, state *pipeline.JobState) (pipeline.Outcome, error)
}

type Scraper interface {
	Scrape(ctx context.Context, url string) (*scraper.Posting, error)
}

// Submission is a job posting handed in for analysis.
type Submission struct {
	Title        string
	Company      string
	Location     *string
	Description  string
	Requirements string
	SalaryMin    *int
	SalaryMax    *int
	Source       domain.Source
	SourceURL    *string
	Force        bool
}

type Result struct {
	Posting          *domain.JobPosting
	Analysis         *domain.JobAnalysis
	AlreadyProcessed bool
	// CreditsUsed is what this request was charged, 0 for cached results.
	CreditsUsed int
}

func (r *Result) Bookmarked() bool {
	return r.Posting != nil
}

type Service struct {
	postings  PostingRepo
	analyses  AnalysisRepo
	ledger    Ledger
	chain     Chain
	scraper   Scraper
	txManager pg.TXManager
	publisher events.Publisher
	group     singleflight.Group
}

func New(postings PostingRepo, analyses AnalysisRepo, ledger Ledger, chain Chain, scraper Scraper, txManager pg.TXManager, publisher events.Publisher) *Service {
	return &Service{
		postings:  postings,
		analyses:  analyses,
		ledger:    ledger,
		chain:     chain,
		scraper:   scraper,
		txManager: txManager,
		publisher: publisher,
	}
}

// Analyze runs the job pipeline for a submission unless the account already
// analysed the same posting and force is not set.
func (s *Service) Analyze(ctx context.Context, accountID int, sub Submission) (*Result, error) {
	sub.Title = strings.TrimSpace(sub.Title)
	sub.Company = strings.TrimSpace(sub.Company)
	if sub.Title == "" || sub.Company == "" || strings.TrimSpace(sub.Description) == "" {
		return nil, ErrInvalidSubmission
	}

	if sub.SourceURL != nil && strings.TrimSpace(*sub.SourceURL) != "" {
		canonical, err := fingerprint.CanonicalURL(*sub.SourceURL)
		if err != nil {
			return nil, ErrInvalidURL
		}
		sub.SourceURL = &canonical
		if sub.Source == "" {
			sub.Source = fingerprint.Source(canonical)
		}
	} else {
		sub.SourceURL = nil
	}
	if sub.Source == "" {
		sub.Source = domain.SourceManual
	}

	fp := fingerprint.Job(sub.SourceURL, sub.Title, sub.Company)
	return s.collapse(ctx, accountID, fp, sub)
}

// AnalyzeURL resolves a job board link and analyses the posting behind it.
// A cached result is returned without fetching the page.
func (s *Service) AnalyzeURL(ctx context.Context, accountID int, rawURL string, force bool) (*Result, error) {
	canonical, err := fingerprint.CanonicalURL(rawURL)
	if err != nil {
		return nil, ErrInvalidURL
	}
	fp := fingerprint.Job(&canonical, "", "")

	if !force {
		res, err := s.cached(ctx, accountID, fp)
		if err != nil || res != nil {
			return res, err
		}
	}

	scraped, err := s.scraper.Scrape(ctx, canonical)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalServiceUnavailable, err)
	}

	return s.collapse(ctx, accountID, fp, Submission{
		Title:       scraped.Title,
		Company:     scraped.Company,
		Location:    scraped.Location,
		Description: scraped.Description,
		Source:      fingerprint.Source(canonical),
		SourceURL:   &canonical,
		Force:       force,
	})
}

// collapse lets one of several identical in-flight submissions do the work.
// The others receive its result as already processed and are not charged.
// Forced submissions always run and bill on their own.
func (s *Service) collapse(ctx context.Context, accountID int, fp string, sub Submission) (*Result, error) {
	if sub.Force {
		return s.analyze(ctx, accountID, fp, sub)
	}

	key := strconv.Itoa(accountID) + "|" + fp
	for {
		executed := false
		var ownErr error
		v, err, _ := s.group.Do(key, func() (any, error) {
			executed = true
			res, err := s.analyze(ctx, accountID, fp, sub)
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
		return &Result{Posting: res.Posting, Analysis: res.Analysis, AlreadyProcessed: true}, nil
	}
}

func (s *Service) cached(ctx context.Context, accountID int, fp string) (*Result, error) {
	analysis, err := s.analyses.Latest(ctx, accountID, fp)
	if err != nil {
		return nil, err
	}
	if analysis == nil {
		return nil, nil
	}

	posting, err := s.postings.FindByFingerprint(ctx, accountID, fp)
	if err != nil {
		return nil, err
	}
	metrics.CacheHits.WithLabelValues(kind).Inc()
	zap.L().Info("job analysis served from history", zap.Int("account_id", accountID), zap.String("analysis_id", analysis.ID.String()))
	return &Result{Posting: posting, Analysis: analysis, AlreadyProcessed: true}, nil
}

func (s *Service) analyze(ctx context.Context, accountID int, fp string, sub Submission) (*Result, error) {
	if !sub.Force {
		res, err := s.cached(ctx, accountID, fp)
		if err != nil || res != nil {
			return res, err
		}
	}

	reservation, err := s.ledger.Reserve(ctx, accountID, s.chain.MaxCost(), "job analysis: "+sub.Title)
	if err != nil {
		return nil, err
	}

	state := &pipeline.JobState{Input: pipeline.JobInput{
		Title:        sub.Title,
		Company:      sub.Company,
		Location:     sub.Location,
		Description:  sub.Description,
		Requirements: sub.Requirements,
		SalaryMin:    sub.SalaryMin,
		SalaryMax:    sub.SalaryMax,
	}}
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

	res, err := s.persist(ctx, accountID, fp, sub, state, outcome, reservation.ID)
	if err != nil {
		s.release(ctx, reservation.ID, domain.StatusFailed)
		return nil, err
	}

	if res.AlreadyProcessed {
		metrics.CacheHits.WithLabelValues(kind).Inc()
	} else if outcome.Halted {
		metrics.PipelineRuns.WithLabelValues(kind, metrics.OutcomeHalted).Inc()
	} else {
		metrics.PipelineRuns.WithLabelValues(kind, metrics.OutcomeCompleted).Inc()
	}
	s.publisher.Publish(events.NewAnalysisCompleted(accountID, events.AnalysisCompleted{
		Kind:        kind,
		ResultID:    res.Analysis.ID.String(),
		CreditsUsed: res.CreditsUsed,
		Cached:      res.AlreadyProcessed,
	}))
	return res, nil
}

// persist bookmarks the posting, stores the analysis and settles the
// reservation in one transaction. A concurrent writer that bookmarked the
// same posting first turns this run into a cache hit and the reservation is
// cancelled.
func (s *Service) persist(ctx context.Context, accountID int, fp string, sub Submission, state *pipeline.JobState,
	outcome pipeline.Outcome, txID int64) (*Result, error) {
	var res *Result
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var posting *domain.JobPosting
		if !state.Inauthentic() {
			var err error
			posting, err = s.postings.Insert(ctx, &domain.JobPosting{
				ID:          uuid.New(),
				AccountID:   accountID,
				Title:       state.Input.Title,
				Company:     state.Input.Company,
				Location:    state.Input.Location,
				Description: state.Input.Description,
				Source:      sub.Source,
				SourceURL:   sub.SourceURL,
				Fingerprint: fp,
			})
			if err != nil {
				return fmt.Errorf("save posting: %w", err)
			}
			if posting == nil {
				existing, err := s.postings.FindByFingerprint(ctx, accountID, fp)
				if err != nil {
					return fmt.Errorf("find posting: %w", err)
				}
				if !sub.Force {
					latest, err := s.analyses.Latest(ctx, accountID, fp)
					if err != nil {
						return fmt.Errorf("find analysis: %w", err)
					}
					if latest != nil {
						res = &Result{Posting: existing, Analysis: latest, AlreadyProcessed: true}
						return s.ledger.Rollback(ctx, txID, domain.StatusCancelled)
					}
				}
				posting = existing
			}
		}

		analysis := &domain.JobAnalysis{
			ID:              uuid.New(),
			AccountID:       accountID,
			Fingerprint:     fp,
			ConfidenceScore: state.Authenticity.Confidence,
			IsAuthentic:     state.Authenticity.IsAuthentic,
			Evidence:        state.Authenticity.Evidence,
			MatchScore:      state.MatchScore,
			Suggestions:     nonNil(state.Suggestions),
			StagesCompleted: nonNil(outcome.Completed),
			CreditsUsed:     outcome.Cost,
		}
		if posting != nil {
			analysis.PostingID = &posting.ID
		}
		if err := analysis.Validate(); err != nil {
			return err
		}
		if err := s.analyses.Insert(ctx, analysis); err != nil {
			return fmt.Errorf("save analysis: %w", err)
		}
		if err := s.ledger.CommitPartial(ctx, txID, outcome.Cost); err != nil {
			return fmt.Errorf("settle reservation: %w", err)
		}

		res = &Result{Posting: posting, Analysis: analysis, CreditsUsed: outcome.Cost}
		return nil
	})
	if err != nil {
		zap.L().Error("can't store job analysis", zap.Int("account_id", accountID), zap.Error(err))
		return nil, err
	}
	return res, nil
}

// release returns a reservation even when the request context is gone.
func (s *Service) release(ctx context.Context, txID int64, status domain.TransactionStatus) {
	if err := s.ledger.Rollback(context.WithoutCancel(ctx), txID, status); err != nil {
		zap.L().Error("can't release reservation", zap.Int64("tx_id", txID), zap.String("status", string(status)), zap.Error(err))
	}
}

func (s *Service) Bookmarks(ctx context.Context, accountID int) ([]domain.JobPosting, error) {
	return s.postings.ListByAccount(ctx, accountID)
}

func (s *Service) History(ctx context.Context, accountID int) ([]domain.JobAnalysis, error) {
	return s.analyses.ListByAccount(ctx, accountID, historyLimit)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
