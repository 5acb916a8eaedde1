package repo

import (
	"github.com/GlebRadaev/jobverify/internal/pg"
	accountrepo "github.com/GlebRadaev/jobverify/internal/repo/account-repo"
	analysisrepo "github.com/GlebRadaev/jobverify/internal/repo/analysis-repo"
	ledgerrepo "github.com/GlebRadaev/jobverify/internal/repo/ledger-repo"
	postingrepo "github.com/GlebRadaev/jobverify/internal/repo/posting-repo"
	resumerepo "github.com/GlebRadaev/jobverify/internal/repo/resume-repo"
	"github.com/GlebRadaev/jobverify/internal/service/authservice"
	"github.com/GlebRadaev/jobverify/internal/service/jobservice"
	"github.com/GlebRadaev/jobverify/internal/service/ledgerservice"
	"github.com/GlebRadaev/jobverify/internal/service/resumeservice"
)

// PostingRepo serves both the job coordinator and resume target lookups.
type PostingRepo interface {
	jobservice.PostingRepo
	resumeservice.PostingRepo
}

type Repositories struct {
	AccountRepo  authservice.Repo
	LedgerRepo   ledgerservice.Repo
	PostingRepo  PostingRepo
	AnalysisRepo jobservice.AnalysisRepo
	ResumeRepo   resumeservice.ResumeRepo
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		AccountRepo:  accountrepo.New(conn),
		LedgerRepo:   ledgerrepo.New(conn),
		PostingRepo:  postingrepo.New(conn),
		AnalysisRepo: analysisrepo.New(conn),
		ResumeRepo:   resumerepo.New(conn),
	}
}
