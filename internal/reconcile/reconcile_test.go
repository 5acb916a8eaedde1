package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/jobverify/internal/config"
	"github.com/GlebRadaev/jobverify/internal/domain"
	"github.com/GlebRadaev/jobverify/internal/service/ledgerservice"
)

// inlinePool runs every task on the caller's goroutine.
type inlinePool struct {
	errs []error
}

func (p *inlinePool) AddTask(_ context.Context, task Task) error {
	if err := task(); err != nil {
		p.errs = append(p.errs, err)
	}
	return nil
}

func (p *inlinePool) Close() {}

func NewMock(t *testing.T) (*Service, *MockLedger) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := NewMockLedger(ctrl)
	cfg := &config.Config{SweepInterval: 10 * time.Millisecond, ReservationTTL: 5 * time.Minute}
	service := New(cfg, ledger)
	return service, ledger
}

func stale(ids ...int64) []domain.CreditTransaction {
	out := make([]domain.CreditTransaction, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.CreditTransaction{ID: id, AccountID: 1, Amount: -2, Kind: domain.KindDebit, Status: domain.StatusPending})
	}
	return out
}

func TestService_Start(t *testing.T) {
	service, ledger := NewMock(t)
	defer service.Stop()

	ledger.EXPECT().StaleReservations(gomock.Any(), 5*time.Minute, batchSize).Return(nil, nil).MinTimes(1)

	ctx, cancel := context.WithCancel(context.Background())
	service.Start(ctx)
	time.Sleep(50 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
}

func TestService_sweep(t *testing.T) {
	tests := []struct {
		name        string
		prepareMock func(ledger *MockLedger)
		wantErrs    int
	}{
		{
			name: "Stale reservations are cancelled",
			prepareMock: func(ledger *MockLedger) {
				ledger.EXPECT().StaleReservations(gomock.Any(), 5*time.Minute, batchSize).Return(stale(1, 2), nil)
				ledger.EXPECT().Rollback(gomock.Any(), int64(1), domain.StatusCancelled).Return(nil)
				ledger.EXPECT().Rollback(gomock.Any(), int64(2), domain.StatusCancelled).Return(nil)
			},
		},
		{
			name: "Reservation settled meanwhile is skipped quietly",
			prepareMock: func(ledger *MockLedger) {
				ledger.EXPECT().StaleReservations(gomock.Any(), 5*time.Minute, batchSize).Return(stale(3), nil)
				ledger.EXPECT().Rollback(gomock.Any(), int64(3), domain.StatusCancelled).Return(ledgerservice.ErrTransactionNotPending)
			},
		},
		{
			name: "Rollback failure is reported",
			prepareMock: func(ledger *MockLedger) {
				ledger.EXPECT().StaleReservations(gomock.Any(), 5*time.Minute, batchSize).Return(stale(4), nil)
				ledger.EXPECT().Rollback(gomock.Any(), int64(4), domain.StatusCancelled).Return(errors.New("db down"))
			},
			wantErrs: 1,
		},
		{
			name: "Listing failure",
			prepareMock: func(ledger *MockLedger) {
				ledger.EXPECT().StaleReservations(gomock.Any(), 5*time.Minute, batchSize).Return(nil, fmt.Errorf("db down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, ledger := NewMock(t)
			service.workerPool.Close()
			pool := &inlinePool{}
			service.workerPool = pool
			tt.prepareMock(ledger)

			service.sweep(context.Background())

			assert.Len(t, pool.errs, tt.wantErrs)
			service.inFlight.Range(func(key, _ any) bool {
				t.Errorf("reservation %v left in flight", key)
				return true
			})
		})
	}
}

func TestService_sweep_SkipsInFlight(t *testing.T) {
	service, ledger := NewMock(t)
	service.workerPool.Close()
	service.workerPool = &inlinePool{}
	service.inFlight.Store(int64(1), struct{}{})

	ledger.EXPECT().StaleReservations(gomock.Any(), 5*time.Minute, batchSize).Return(stale(1, 2), nil)
	ledger.EXPECT().Rollback(gomock.Any(), int64(2), domain.StatusCancelled).Return(nil)

	service.sweep(context.Background())

	_, stillHeld := service.inFlight.Load(int64(1))
	assert.True(t, stillHeld)
}

func TestService_sweep_PoolRejects(t *testing.T) {
	ctrl := gomock.NewController(t)
	service, ledger := NewMock(t)
	service.workerPool.Close()
	pool := NewMockWorkerPoolI(ctrl)
	service.workerPool = pool

	ledger.EXPECT().StaleReservations(gomock.Any(), 5*time.Minute, batchSize).Return(stale(5), nil)
	pool.EXPECT().AddTask(gomock.Any(), gomock.Any()).Return(ErrPoolClosed)

	service.sweep(context.Background())

	_, held := service.inFlight.Load(int64(5))
	assert.False(t, held)
}
