package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/Sharans23/LenDenClub/internal/adapter/http"
	"github.com/Sharans23/LenDenClub/internal/adapter/http/handler"
	postgresRepo "github.com/Sharans23/LenDenClub/internal/adapter/repository/postgres"
	redisRepo "github.com/Sharans23/LenDenClub/internal/adapter/repository/redis"
	"github.com/Sharans23/LenDenClub/internal/infrastructure/auth"
	"github.com/Sharans23/LenDenClub/internal/infrastructure/config"
	"github.com/Sharans23/LenDenClub/internal/infrastructure/logger"
	"github.com/Sharans23/LenDenClub/internal/infrastructure/metrics"
	"github.com/Sharans23/LenDenClub/internal/infrastructure/postgres"
	"github.com/Sharans23/LenDenClub/internal/infrastructure/redis"
	"github.com/Sharans23/LenDenClub/internal/usecase"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	zerolog.SetGlobalLevel(log.Logger.GetLevel())

	startingBalance, err := decimal.NewFromString(cfg.StartingBalance)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.StartingBalance).Msg("invalid starting balance")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	retrier := postgresRepo.NewRetrier()
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	usernameCache := redisRepo.NewCache(redisClient)

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, startingBalance)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, ledgerRepo, retrier)
	historyUC := usecase.NewHistoryUseCase(ledgerRepo, accountRepo, usernameCache)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)

	// Initialize infrastructure
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	m := metrics.New()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(accountUC, jwtManager, m)
	accountHandler := handler.NewAccountHandler(accountUC)
	transferHandler := handler.NewTransferHandler(transferUC, m)
	historyHandler := handler.NewHistoryHandler(historyUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:      authHandler,
		AccountHandler:   accountHandler,
		TransferHandler:  transferHandler,
		HistoryHandler:   historyHandler,
		LedgerHandler:    ledgerHandler,
		HealthHandler:    healthHandler,
		JWTManager:       jwtManager,
		Metrics:          m,
		Logger:           log.Logger,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimitRPS:     cfg.RateLimitRPS,
		RateLimitBurst:   cfg.RateLimitBurst,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
