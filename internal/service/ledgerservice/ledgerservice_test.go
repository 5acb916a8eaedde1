package ledgerservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/jobverify/internal/domain"
	"github.com/GlebRadaev/jobverify/internal/events"
	"github.com/GlebRadaev/jobverify/internal/pg"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type mocks struct {
	repo      *MockRepo
	txManager *pg.MockTXManager
	publisher *events.MockPublisher
}

func NewMock(t *testing.T) (*Service, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		repo:      NewMockRepo(ctrl),
		txManager: pg.NewMockTXManager(ctrl),
		publisher: events.NewMockPublisher(ctrl),
	}
	s := New(m.repo, m.txManager, m.publisher, 5*time.Minute)
	s.now = func() time.Time { return fixedNow }
	return s, m
}

func (m mocks) inTx() {
	m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
			return fn(ctx)
		})
}

func account(credits int) *domain.Account {
	return &domain.Account{ID: 1, Login: "jane", Credits: credits, IsActive: true}
}

func pending(id int64, amount int) *domain.CreditTransaction {
	return &domain.CreditTransaction{ID: id, AccountID: 1, Amount: amount, Kind: domain.KindDebit, Status: domain.StatusPending, Description: "job analysis"}
}

func TestService_Reserve(t *testing.T) {
	staleBefore := fixedNow.Add(-5 * time.Minute)

	tests := []struct {
		name        string
		amount      int
		prepareMock func(m mocks)
		wantErr     error
		wantTxID    int64
	}{
		{
			name:   "Reserve within balance",
			amount: 2,
			prepareMock: func(m mocks) {
				m.inTx()
				m.repo.EXPECT().LockAccount(gomock.Any(), 1).Return(account(50), nil)
				m.repo.EXPECT().StaleReservations(gomock.Any(), 1, staleBefore, staleBatch).Return(nil, nil)
				m.repo.EXPECT().AdjustCredits(gomock.Any(), 1, -2).Return(48, nil)
				m.repo.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *domain.CreditTransaction) (*domain.CreditTransaction, error) {
						assert.Equal(t, -2, tx.Amount)
						assert.Equal(t, domain.StatusPending, tx.Status)
						assert.Equal(t, domain.KindDebit, tx.Kind)
						tx.ID = 7
						return tx, nil
					})
				m.publisher.EXPECT().Publish(gomock.Any()).Do(func(ev events.Event) {
					assert.Equal(t, events.TypeCreditsChanged, ev.Type)
					assert.Equal(t, events.CreditsChanged{Balance: 48, Delta: -2, Reason: "job analysis"}, ev.Payload)
				})
			},
			wantTxID: 7,
		},
		{
			name:   "Insufficient credits",
			amount: 5,
			prepareMock: func(m mocks) {
				m.inTx()
				m.repo.EXPECT().LockAccount(gomock.Any(), 1).Return(account(4), nil)
				m.repo.EXPECT().StaleReservations(gomock.Any(), 1, staleBefore, staleBatch).Return(nil, nil)
			},
			wantErr: ErrInsufficientCredits,
		},
		{
			name:   "Stale reservations are released first",
			amount: 2,
			prepareMock: func(m mocks) {
				m.inTx()
				m.repo.EXPECT().LockAccount(gomock.Any(), 1).Return(account(1), nil)
				m.repo.EXPECT().StaleReservations(gomock.Any(), 1, staleBefore, staleBatch).
					Return([]domain.CreditTransaction{*pending(3, -2)}, nil)
				m.repo.EXPECT().UpdateTransaction(gomock.Any(), int64(3), domain.StatusCancelled, -2).Return(nil)
				m.repo.EXPECT().AdjustCredits(gomock.Any(), 1, 2).Return(3, nil)
				m.repo.EXPECT().AdjustCredits(gomock.Any(), 1, -2).Return(1, nil)
				m.repo.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *domain.CreditTransaction) (*domain.CreditTransaction, error) {
						tx.ID = 8
						return tx, nil
					})
				m.publisher.EXPECT().Publish(gomock.Any())
			},
			wantTxID: 8,
		},
		{
			name:   "Unknown account",
			amount: 2,
			prepareMock: func(m mocks) {
				m.inTx()
				m.repo.EXPECT().LockAccount(gomock.Any(), 1).Return(nil, nil)
			},
			wantErr: ErrAccountNotFound,
		},
		{
			name:   "Inactive account",
			amount: 2,
			prepareMock: func(m mocks) {
				m.inTx()
				acc := account(50)
				acc.IsActive = false
				m.repo.EXPECT().LockAccount(gomock.Any(), 1).Return(acc, nil)
			},
			wantErr: ErrAccountInactive,
		},
		{
			name:        "Non-positive amount",
			amount:      0,
			prepareMock: func(m mocks) {},
			wantErr:     ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := NewMock(t)
			tt.prepareMock(m)

			tx, err := s.Reserve(context.Background(), 1, tt.amount, "job analysis")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tx)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTxID, tx.ID)
		})
	}
}

func (m mocks) settle(tx *domain.CreditTransaction) {
	m.inTx()
	m.repo.EXPECT().TransactionAccount(gomock.Any(), tx.ID).Return(tx.AccountID, nil)
	m.repo.EXPECT().LockAccount(gomock.Any(), tx.AccountID).Return(account(48), nil)
	m.repo.EXPECT().LockTransaction(gomock.Any(), tx.ID).Return(tx, nil)
}

func TestService_Commit(t *testing.T) {
	tests := []struct {
		name        string
		prepareMock func(m mocks)
		wantErr     error
	}{
		{
			name: "Pending becomes success",
			prepareMock: func(m mocks) {
				m.settle(pending(7, -2))
				m.repo.EXPECT().UpdateTransaction(gomock.Any(), int64(7), domain.StatusSuccess, -2).Return(nil)
			},
		},
		{
			name: "Second commit is a no-op",
			prepareMock: func(m mocks) {
				tx := pending(7, -2)
				tx.Status = domain.StatusSuccess
				m.settle(tx)
			},
		},
		{
			name: "Failed reservation cannot be committed",
			prepareMock: func(m mocks) {
				tx := pending(7, -2)
				tx.Status = domain.StatusFailed
				m.settle(tx)
			},
			wantErr: ErrTransactionNotPending,
		},
		{
			name: "Unknown transaction",
			prepareMock: func(m mocks) {
				m.inTx()
				m.repo.EXPECT().TransactionAccount(gomock.Any(), int64(7)).Return(0, nil)
			},
			wantErr: ErrTransactionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := NewMock(t)
			tt.prepareMock(m)

			err := s.Commit(context.Background(), 7)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_CommitPartial(t *testing.T) {
	tests := []struct {
		name        string
		used        int
		prepareMock func(m mocks)
		wantErr     error
	}{
		{
			name: "Unused credits return to the balance",
			used: 1,
			prepareMock: func(m mocks) {
				m.settle(pending(7, -2))
				m.repo.EXPECT().UpdateTransaction(gomock.Any(), int64(7), domain.StatusSuccess, -1).Return(nil)
				m.repo.EXPECT().AdjustCredits(gomock.Any(), 1, 1).Return(49, nil)
				m.publisher.EXPECT().Publish(gomock.Any()).Do(func(ev events.Event) {
					assert.Equal(t, events.CreditsChanged{Balance: 49, Delta: 1, Reason: "job analysis"}, ev.Payload)
				})
			},
		},
		{
			name: "Full use behaves like commit",
			used: 2,
			prepareMock: func(m mocks) {
				m.settle(pending(7, -2))
				m.repo.EXPECT().UpdateTransaction(gomock.Any(), int64(7), domain.StatusSuccess, -2).Return(nil)
			},
		},
		{
			name: "Using more than reserved",
			used: 3,
			prepareMock: func(m mocks) {
				m.settle(pending(7, -2))
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "Cancelled reservation",
			used: 1,
			prepareMock: func(m mocks) {
				tx := pending(7, -2)
				tx.Status = domain.StatusCancelled
				m.settle(tx)
			},
			wantErr: ErrTransactionNotPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := NewMock(t)
			tt.prepareMock(m)

			err := s.CommitPartial(context.Background(), 7, tt.used)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_Rollback(t *testing.T) {
	tests := []struct {
		name        string
		status      domain.TransactionStatus
		prepareMock func(m mocks)
		wantErr     error
	}{
		{
			name:   "Failed run returns credits",
			status: domain.StatusFailed,
			prepareMock: func(m mocks) {
				m.settle(pending(7, -2))
				m.repo.EXPECT().UpdateTransaction(gomock.Any(), int64(7), domain.StatusFailed, -2).Return(nil)
				m.repo.EXPECT().AdjustCredits(gomock.Any(), 1, 2).Return(50, nil)
				m.publisher.EXPECT().Publish(gomock.Any())
			},
		},
		{
			name:   "Committed reservation cannot be rolled back",
			status: domain.StatusCancelled,
			prepareMock: func(m mocks) {
				tx := pending(7, -2)
				tx.Status = domain.StatusSuccess
				m.settle(tx)
			},
			wantErr: ErrTransactionNotPending,
		},
		{
			name:        "Rollback to success is rejected",
			status:      domain.StatusSuccess,
			prepareMock: func(m mocks) {},
			wantErr:     ErrTransactionNotPending,
		},
		{
			name:   "Database error",
			status: domain.StatusFailed,
			prepareMock: func(m mocks) {
				m.settle(pending(7, -2))
				m.repo.EXPECT().UpdateTransaction(gomock.Any(), int64(7), domain.StatusFailed, -2).Return(errors.New("database error"))
			},
			wantErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := NewMock(t)
			tt.prepareMock(m)

			err := s.Rollback(context.Background(), 7, tt.status)
			if tt.wantErr != nil {
				assert.Error(t, err)
				if errors.Is(tt.wantErr, ErrTransactionNotPending) {
					assert.ErrorIs(t, err, ErrTransactionNotPending)
				}
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_CreditPurchase(t *testing.T) {
	tests := []struct {
		name        string
		credits     int
		ref         string
		prepareMock func(m mocks)
		wantApplied bool
		wantErr     error
	}{
		{
			name:    "First delivery credits the account",
			credits: 100,
			ref:     "pi_1",
			prepareMock: func(m mocks) {
				m.inTx()
				m.repo.EXPECT().LockAccount(gomock.Any(), 1).Return(account(48), nil)
				m.repo.EXPECT().InsertPurchase(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *domain.CreditTransaction) (*domain.CreditTransaction, error) {
						assert.Equal(t, "pi_1", *tx.ExternalRef)
						assert.Equal(t, domain.StatusSuccess, tx.Status)
						assert.Equal(t, domain.KindPurchase, tx.Kind)
						tx.ID = 9
						return tx, nil
					})
				m.repo.EXPECT().AdjustCredits(gomock.Any(), 1, 100).Return(148, nil)
				m.publisher.EXPECT().Publish(gomock.Any()).Times(2)
			},
			wantApplied: true,
		},
		{
			name:    "Replay is acknowledged without crediting",
			credits: 100,
			ref:     "pi_1",
			prepareMock: func(m mocks) {
				m.inTx()
				m.repo.EXPECT().LockAccount(gomock.Any(), 1).Return(account(148), nil)
				m.repo.EXPECT().InsertPurchase(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
		},
		{
			name:        "Missing reference",
			credits:     100,
			prepareMock: func(m mocks) {},
			wantErr:     ErrMissingReference,
		},
		{
			name:        "Zero credits",
			ref:         "pi_2",
			prepareMock: func(m mocks) {},
			wantErr:     ErrInvalidAmount,
		},
		{
			name:    "Unknown account",
			credits: 100,
			ref:     "pi_3",
			prepareMock: func(m mocks) {
				m.inTx()
				m.repo.EXPECT().LockAccount(gomock.Any(), 1).Return(nil, nil)
			},
			wantErr: ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := NewMock(t)
			tt.prepareMock(m)

			applied, err := s.CreditPurchase(context.Background(), 1, tt.credits, tt.ref)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantApplied, applied)
		})
	}
}

func TestService_Balance(t *testing.T) {
	s, m := NewMock(t)

	m.repo.EXPECT().GetAccount(gomock.Any(), 1).Return(account(42), nil)
	credits, err := s.Balance(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 42, credits)

	m.repo.EXPECT().GetAccount(gomock.Any(), 2).Return(nil, nil)
	_, err = s.Balance(context.Background(), 2)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestService_Audit(t *testing.T) {
	tests := []struct {
		name           string
		credits        int
		settled        int
		pending        int
		wantConsistent bool
	}{
		{name: "Balanced ledger", credits: 143, settled: 95, pending: -2, wantConsistent: true},
		{name: "Drifted balance", credits: 150, settled: 95, pending: -2, wantConsistent: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := NewMock(t)
			m.inTx()
			m.repo.EXPECT().LockAccount(gomock.Any(), 1).Return(account(tt.credits), nil)
			m.repo.EXPECT().Totals(gomock.Any(), 1).Return(tt.settled, tt.pending, nil)

			audit, err := s.Audit(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantConsistent, audit.Consistent())
			assert.Equal(t, domain.InitialCredits+tt.settled+tt.pending, audit.Expected)
		})
	}
}

func TestService_StaleReservations(t *testing.T) {
	s, m := NewMock(t)

	m.repo.EXPECT().StaleReservations(gomock.Any(), 0, fixedNow.Add(-time.Minute), 10).
		Return([]domain.CreditTransaction{*pending(1, -2)}, nil)

	stale, err := s.StaleReservations(context.Background(), time.Minute, 10)
	require.NoError(t, err)
	assert.Len(t, stale, 1)
}
