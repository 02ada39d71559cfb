package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Sharans23/LenDenClub/internal/adapter/http/handler"
	"github.com/Sharans23/LenDenClub/internal/adapter/http/middleware"
	"github.com/Sharans23/LenDenClub/internal/infrastructure/auth"
	"github.com/Sharans23/LenDenClub/internal/infrastructure/metrics"
	"github.com/Sharans23/LenDenClub/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler      *handler.AuthHandler
	AccountHandler   *handler.AccountHandler
	TransferHandler  *handler.TransferHandler
	HistoryHandler   *handler.HistoryHandler
	LedgerHandler    *handler.LedgerHandler
	HealthHandler    *handler.HealthHandler
	JWTManager       *auth.JWTManager
	Metrics          *metrics.Metrics
	Logger           zerolog.Logger
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimitRPS     float64
	RateLimitBurst   int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			r.Route("/user", func(r chi.Router) {
				r.Get("/profile", cfg.AccountHandler.GetProfile)
				r.Put("/profile", cfg.AccountHandler.UpdateProfile)
				r.Put("/change-password", cfg.AccountHandler.ChangePassword)
			})

			r.Route("/transactions", func(r chi.Router) {
				// Idempotency keys protect transfer submissions
				// from duplicate client retries.
				if cfg.IdempotencyStore != nil {
					idem := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
					r.With(idem.Wrap).Post("/transfer", cfg.TransferHandler.Transfer)
				} else {
					r.Post("/transfer", cfg.TransferHandler.Transfer)
				}
				r.Get("/", cfg.HistoryHandler.List)
				r.Get("/balance", cfg.AccountHandler.GetBalance)
			})

			r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
		})
	})

	return r
}
