package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/jobverify/docs"
	authhandlers "github.com/GlebRadaev/jobverify/internal/handlers/auth"
	balancehandlers "github.com/GlebRadaev/jobverify/internal/handlers/balance"
	eventhandlers "github.com/GlebRadaev/jobverify/internal/handlers/events"
	jobhandlers "github.com/GlebRadaev/jobverify/internal/handlers/jobs"
	paymenthandlers "github.com/GlebRadaev/jobverify/internal/handlers/payments"
	resumehandlers "github.com/GlebRadaev/jobverify/internal/handlers/resumes"
	"github.com/GlebRadaev/jobverify/internal/metrics"
	"github.com/GlebRadaev/jobverify/internal/service"
	"github.com/GlebRadaev/jobverify/pkg/auth"
)

//go:generate mockgen -source=handlers.go -destination=mock.go -package=handlers

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
	GetAudit(w http.ResponseWriter, r *http.Request)
}

type JobHandler interface {
	Analyze(w http.ResponseWriter, r *http.Request)
	AnalyzeURL(w http.ResponseWriter, r *http.Request)
	GetBookmarks(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
}

type ResumeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	SetTarget(w http.ResponseWriter, r *http.Request)
	Analyze(w http.ResponseWriter, r *http.Request)
	GetAnalyses(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	Webhook(w http.ResponseWriter, r *http.Request)
}

type EventHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler    AuthHandler
	BalanceHandler BalanceHandler
	JobHandler     JobHandler
	ResumeHandler  ResumeHandler
	PaymentHandler PaymentHandler
	EventHandler   EventHandler

	tokens auth.TokenValidator
}

func New(s *service.Services, tokens auth.TokenValidator, bus eventhandlers.Subscriber, webhookSecret string) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AuthService),
		BalanceHandler: balancehandlers.New(s.LedgerService),
		JobHandler:     jobhandlers.New(s.JobService),
		ResumeHandler:  resumehandlers.New(s.ResumeService),
		PaymentHandler: paymenthandlers.New(s.LedgerService, webhookSecret),
		EventHandler:   eventhandlers.New(bus),
		tokens:         tokens,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		metrics.Middleware,
	)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Post("/api/payments/webhook", h.PaymentHandler.Webhook)
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.With(auth.WebSocketMiddleware(h.tokens)).Get("/events", h.EventHandler.Stream)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(h.tokens))
			r.Route("/balance", func(r chi.Router) {
				r.Get("/", h.BalanceHandler.GetBalance)
				r.Get("/audit", h.BalanceHandler.GetAudit)
			})
			r.Get("/transactions", h.BalanceHandler.GetTransactions)
			r.Route("/jobs", func(r chi.Router) {
				r.Get("/", h.JobHandler.GetBookmarks)
				r.Get("/analyses", h.JobHandler.GetHistory)
				r.Post("/analyze", h.JobHandler.Analyze)
				r.Post("/analyze-url", h.JobHandler.AnalyzeURL)
			})
			r.Route("/resumes", func(r chi.Router) {
				r.Post("/", h.ResumeHandler.Create)
				r.Get("/", h.ResumeHandler.List)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.ResumeHandler.Get)
					r.Put("/target", h.ResumeHandler.SetTarget)
					r.Post("/analyze", h.ResumeHandler.Analyze)
					r.Get("/analyses", h.ResumeHandler.GetAnalyses)
				})
			})
		})
	})

	return r
}
