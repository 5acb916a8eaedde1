package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/GlebRadaev/jobverify/internal/ai"
	"github.com/GlebRadaev/jobverify/internal/config"
	"github.com/GlebRadaev/jobverify/internal/reconcile"
	"github.com/GlebRadaev/jobverify/internal/service"
)

type ApplicationSuite struct {
	suite.Suite
	app       *Application
	testError error
}

func TestApplication(t *testing.T) {
	suite.Run(t, &ApplicationSuite{})
}

func (s *ApplicationSuite) SetupTest() {
	s.app = New()
}

func (s *ApplicationSuite) TestNewAIClientWithoutKey() {
	client := newAIClient(context.Background(), &config.Config{})

	s.IsType(ai.Disabled{}, client)
	_, err := client.Generate(context.Background(), "prompt")
	s.ErrorIs(err, ai.ErrUnavailable)
}

func (s *ApplicationSuite) TestStartSweeperStopsWithContext() {
	ctx, cancel := context.WithCancel(context.Background())
	s.app.srv = &service.Services{Sweeper: reconcile.New(&config.Config{SweepInterval: time.Hour, ReservationTTL: time.Minute}, nil)}

	s.app.startSweeper(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.app.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.Fail("sweeper did not stop")
	}
}

func (s *ApplicationSuite) TestWait() {
	ctx, cancel := context.WithCancel(context.Background())

	s.app.errCh = make(chan error)
	go func() {
		s.app.errCh <- fmt.Errorf("mock error")
	}()

	err := s.app.Wait(ctx, cancel)

	s.Require().Error(err)
	s.Contains(err.Error(), "mock error")
}
