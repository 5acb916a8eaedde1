// Package reconcile releases credit reservations whose request died before
// settling them.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/jobverify/internal/config"
	"github.com/GlebRadaev/jobverify/internal/domain"
	"github.com/GlebRadaev/jobverify/internal/metrics"
	"github.com/GlebRadaev/jobverify/internal/service/ledgerservice"
)

//go:generate mockgen -source=reconcile.go -destination=mock.go -package=reconcile

const (
	batchSize = 500
	workers   = 4
)

type Ledger interface {
	StaleReservations(ctx context.Context, olderThan time.Duration, limit int) ([]domain.CreditTransaction, error)
	Rollback(ctx context.Context, txID int64, status domain.TransactionStatus) error
}

type Service struct {
	ledger         Ledger
	workerPool     WorkerPoolI
	sweepInterval  time.Duration
	reservationTTL time.Duration
	limit          int
	inFlight       sync.Map
}

func New(cfg *config.Config, ledger Ledger) *Service {
	return &Service{
		ledger:         ledger,
		workerPool:     NewWorkerPool(workers),
		sweepInterval:  cfg.SweepInterval,
		reservationTTL: cfg.ReservationTTL,
		limit:          batchSize,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Reservation sweeper started", zap.Duration("interval", s.sweepInterval), zap.Duration("ttl", s.reservationTTL))
	go s.run(ctx)
}

func (s *Service) Stop() {
	s.workerPool.Close()
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping sweeper")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	stale, err := s.ledger.StaleReservations(ctx, s.reservationTTL, s.limit)
	if err != nil {
		zap.L().Error("Failed to fetch stale reservations", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, tx := range stale {
		if _, loaded := s.inFlight.LoadOrStore(tx.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer s.inFlight.Delete(tx.ID)
				return s.release(ctx, tx)
			})
			if err != nil {
				s.inFlight.Delete(tx.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error scheduling stale reservations", zap.Error(err))
	}
}

func (s *Service) release(ctx context.Context, tx domain.CreditTransaction) error {
	err := s.ledger.Rollback(ctx, tx.ID, domain.StatusCancelled)
	switch {
	case err == nil:
		metrics.StaleReleased.Inc()
		zap.L().Info("Stale reservation released", zap.Int64("tx_id", tx.ID), zap.Int("account_id", tx.AccountID), zap.Int("credits", -tx.Amount))
		return nil
	case errors.Is(err, ledgerservice.ErrTransactionNotPending):
		// settled by its request after the listing
		return nil
	default:
		return fmt.Errorf("release reservation %d: %w", tx.ID, err)
	}
}
