package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	accountrepo "github.com/GlebRadaev/jobverify/internal/repo/account-repo"
	analysisrepo "github.com/GlebRadaev/jobverify/internal/repo/analysis-repo"
	ledgerrepo "github.com/GlebRadaev/jobverify/internal/repo/ledger-repo"
	postingrepo "github.com/GlebRadaev/jobverify/internal/repo/posting-repo"
	resumerepo "github.com/GlebRadaev/jobverify/internal/repo/resume-repo"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.IsType(t, &accountrepo.Repository{}, repo.AccountRepo)
	assert.IsType(t, &ledgerrepo.Repository{}, repo.LedgerRepo)
	assert.IsType(t, &postingrepo.Repository{}, repo.PostingRepo)
	assert.IsType(t, &analysisrepo.Repository{}, repo.AnalysisRepo)
	assert.IsType(t, &resumerepo.Repository{}, repo.ResumeRepo)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
