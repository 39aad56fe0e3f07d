// Package server wires the record store, domain services, and HTTP transport
// into one application. The store instance is constructed here and handed to
// every layer that needs it; no package-level singletons.
package server

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bizsuite/internal/auth"
	"bizsuite/internal/domain/audit"
	"bizsuite/internal/domain/benefits"
	"bizsuite/internal/domain/hr"
	"bizsuite/internal/domain/leave"
	"bizsuite/internal/domain/payroll"
	"bizsuite/internal/domain/training"
	"bizsuite/internal/platform/config"
	"bizsuite/internal/store"
	audithandler "bizsuite/internal/transport/http/handlers/audit"
	authhandler "bizsuite/internal/transport/http/handlers/auth"
	benefitshandler "bizsuite/internal/transport/http/handlers/benefits"
	hrhandler "bizsuite/internal/transport/http/handlers/hr"
	leavehandler "bizsuite/internal/transport/http/handlers/leave"
	payrollhandler "bizsuite/internal/transport/http/handlers/payroll"
	traininghandler "bizsuite/internal/transport/http/handlers/training"
	"bizsuite/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	Store  *store.Store
	Router http.Handler
}

// New opens the store at cfg.DataFile and builds the full router.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	st, err := store.Open(cfg.DataFile)
	if err != nil {
		return nil, err
	}
	return &App{Config: cfg, Store: st, Router: NewRouter(cfg, st, logger)}, nil
}

// NewRouter assembles the HTTP surface over an already-open store. Split out
// so tests can drive the full stack against a temp-dir store.
func NewRouter(cfg config.Config, st *store.Store, logger *slog.Logger) http.Handler {
	auditSvc := audit.New(st)
	authSvc := auth.NewService(st, cfg.JWTSecret, cfg.TokenTTL, logger)
	hrSvc := hr.NewService(st)
	leaveSvc := leave.NewService(st)
	payrollSvc := payroll.NewService(st)
	trainingSvc := training.NewService(st)
	benefitsSvc := benefits.NewService(st)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.MetricsEnabled {
		router.Handle("/metrics", promhttp.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authSvc, auditSvc).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			hrhandler.NewHandler(hrSvc, auditSvc).RegisterRoutes(r)
			leavehandler.NewHandler(leaveSvc, auditSvc).RegisterRoutes(r)
			payrollhandler.NewHandler(payrollSvc, auditSvc).RegisterRoutes(r)
			traininghandler.NewHandler(trainingSvc, auditSvc).RegisterRoutes(r)
			benefitshandler.NewHandler(benefitsSvc, auditSvc).RegisterRoutes(r)
			audithandler.NewHandler(auditSvc).RegisterRoutes(r)
		})
	})

	return router
}

// Run starts the server and blocks. Fatal setup errors exit the process.
func Run() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	app, err := New(cfg, logger)
	if err != nil {
		logger.Error("store open failed", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := app.Store.Close(); err != nil {
			logger.Error("store close failed", "err", err)
		}
	}()

	logger.Info("server listening", "addr", cfg.Addr, "dataFile", cfg.DataFile)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
