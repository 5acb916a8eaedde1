package service

import (
	"github.com/GlebRadaev/jobverify/internal/ai"
	"github.com/GlebRadaev/jobverify/internal/config"
	"github.com/GlebRadaev/jobverify/internal/events"
	"github.com/GlebRadaev/jobverify/internal/handlers/auth"
	"github.com/GlebRadaev/jobverify/internal/handlers/balance"
	"github.com/GlebRadaev/jobverify/internal/handlers/jobs"
	"github.com/GlebRadaev/jobverify/internal/handlers/payments"
	"github.com/GlebRadaev/jobverify/internal/handlers/resumes"
	"github.com/GlebRadaev/jobverify/internal/pg"
	"github.com/GlebRadaev/jobverify/internal/pipeline"
	"github.com/GlebRadaev/jobverify/internal/reconcile"
	"github.com/GlebRadaev/jobverify/internal/repo"
	authservice "github.com/GlebRadaev/jobverify/internal/service/authservice"
	jobservice "github.com/GlebRadaev/jobverify/internal/service/jobservice"
	ledgerservice "github.com/GlebRadaev/jobverify/internal/service/ledgerservice"
	resumeservice "github.com/GlebRadaev/jobverify/internal/service/resumeservice"
	pkgauth "github.com/GlebRadaev/jobverify/pkg/auth"
)

// LedgerService is the ledger as seen by the balance and payment handlers.
type LedgerService interface {
	balance.Service
	payments.Service
}

type Services struct {
	AuthService   auth.Service
	LedgerService LedgerService
	JobService    jobs.Service
	ResumeService resumes.Service
	Sweeper       *reconcile.Service
}

func New(
	repo *repo.Repositories,
	txManager pg.TXManager,
	cfg *config.Config,
	jwtService pkgauth.JWTServiceInterface,
	aiClient ai.Client,
	scraper jobservice.Scraper,
	publisher events.Publisher,
) *Services {
	ledgerService := ledgerservice.New(repo.LedgerRepo, txManager, publisher, cfg.ReservationTTL)
	authService := authservice.New(repo.AccountRepo, &pkgauth.HashService{}, jwtService, cfg.TokenTTL)
	jobService := jobservice.New(
		repo.PostingRepo, repo.AnalysisRepo, ledgerService,
		pipeline.NewJobChain(aiClient), scraper, txManager, publisher,
	)
	resumeService := resumeservice.New(
		repo.ResumeRepo, repo.PostingRepo, ledgerService,
		pipeline.NewResumeChain(aiClient), txManager, publisher,
	)

	return &Services{
		AuthService:   authService,
		LedgerService: ledgerService,
		JobService:    jobService,
		ResumeService: resumeService,
		Sweeper:       reconcile.New(cfg, ledgerService),
	}
}
