package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/jobverify/internal/ai"
	"github.com/GlebRadaev/jobverify/internal/config"
	"github.com/GlebRadaev/jobverify/internal/events"
	"github.com/GlebRadaev/jobverify/internal/handlers"
	"github.com/GlebRadaev/jobverify/internal/pg"
	"github.com/GlebRadaev/jobverify/internal/repo"
	"github.com/GlebRadaev/jobverify/internal/scraper"
	"github.com/GlebRadaev/jobverify/internal/service"
	"github.com/GlebRadaev/jobverify/pkg/auth"
	"github.com/GlebRadaev/jobverify/pkg/clients"
	"github.com/GlebRadaev/jobverify/pkg/logger"
)

const eventBuffer = 64

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories
	bus  *events.Bus
	pool *pgxpool.Pool
	ai   ai.Client

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}
	for _, err := range cfg.Check() {
		zap.L().Warn("suspicious configuration", zap.Error(err))
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(ctx, pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	conn := pg.New(pool)
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	a.cfg = cfg
	a.pool = pool
	a.ai = newAIClient(ctx, cfg)
	a.bus = events.NewBus(eventBuffer)
	a.repo = repo.New(conn)
	a.srv = service.New(a.repo, txManager, cfg, jwtService, a.ai, scraper.New(clients.NewHTTPClient()), a.bus)
	a.api = handlers.New(a.srv, jwtService, a.bus, cfg.WebhookSecret)

	a.startAuditLog(ctx)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startSweeper(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

// newAIClient falls back to a client that always reports the backend as
// unavailable, so analyses fail with 503 and no credits are charged.
func newAIClient(ctx context.Context, cfg *config.Config) ai.Client {
	if cfg.GeminiAPIKey == "" {
		zap.L().Warn("GEMINI_API_KEY is not set, analyses will be rejected")
		return ai.Disabled{}
	}
	client, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AITimeout)
	if err != nil {
		zap.L().Error("can't create gemini client", zap.Error(err))
		return ai.Disabled{}
	}
	return client
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startAuditLog(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		events.RunAuditLog(ctx, a.bus)
	}()
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		// Closing the bus ends open event streams, which Shutdown does not wait for.
		a.bus.Close()
		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startSweeper(ctx context.Context) {
	a.srv.Sweeper.Start(ctx)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()
		a.srv.Sweeper.Stop()
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	a.close()
	return appErr
}

func (a *Application) close() {
	if closer, ok := a.ai.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			zap.L().Error("can't close ai client", zap.Error(err))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
