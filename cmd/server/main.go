package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/clubly/clubly/application/usecase"
	"github.com/clubly/clubly/application/usecase/admin"
	"github.com/clubly/clubly/application/usecase/atomic"
	"github.com/clubly/clubly/application/usecase/event"
	"github.com/clubly/clubly/infrastructure/adapter/postgres"
	"github.com/clubly/clubly/infrastructure/config"
	clublyhttp "github.com/clubly/clubly/infrastructure/http"
	"github.com/clubly/clubly/infrastructure/http/handler"
	"github.com/clubly/clubly/infrastructure/http/middleware"
	"github.com/clubly/clubly/infrastructure/service/alert"
	"github.com/clubly/clubly/infrastructure/service/jwt"
	"github.com/clubly/clubly/infrastructure/service/logger"
	"github.com/clubly/clubly/infrastructure/service/password"
	"github.com/clubly/clubly/infrastructure/service/ratelimit"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "clubly",
	})
	structuredLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env": cfg.Environment,
	})

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		structuredLogger.Error(ctx, "Failed to ping database", err, map[string]interface{}{})
		log.Fatalf("Failed to ping database: %v", err)
	}
	structuredLogger.Info(ctx, "Database connection established", map[string]interface{}{})

	redisLogger := logrus.New()

	alertSink, err := alert.NewSink(alert.SinkConfig{
		Enabled:  cfg.AlertEnabled,
		RedisURL: cfg.RedisURL,
		Channel:  cfg.AlertChannel,
	}, redisLogger)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to initialize alert sink", err, map[string]interface{}{
			"redis_url": cfg.RedisURL,
		})
		log.Fatalf("Failed to initialize alert sink: %v", err)
	}

	rateLimiter, err := ratelimit.NewLoginRateLimiter(ratelimit.RateLimitConfig{
		Enabled:       cfg.RateLimitEnabled,
		RedisURL:      cfg.RedisURL,
		MaxAttempts:   cfg.RateLimitMaxAttempts,
		Window:        cfg.RateLimitWindow,
		BlockDuration: cfg.RateLimitBlockDuration,
	}, redisLogger)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to initialize rate limiter", err, map[string]interface{}{
			"redis_url": cfg.RedisURL,
		})
		log.Fatalf("Failed to initialize rate limiter: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)
	creditRepo := postgres.NewCreditRepository(db)
	auditRepo := postgres.NewAuditLogRepository(db)
	eventRepo := postgres.NewEventRepository(db)

	tokenService, err := jwt.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	passwordService := password.NewBcryptPasswordService(10)

	mutationExecutor := atomic.NewMutationExecutor(auditRepo, structuredLogger, alertSink)
	creditTxExecutor := atomic.NewCreditTransactionExecutor(creditRepo, structuredLogger, alertSink)

	loginUseCase := usecase.NewLoginUseCase(userRepo, tokenService, passwordService, rateLimiter, cfg.AccessTokenTTL)
	adminUseCase := admin.NewAdminUseCase(userRepo, creditRepo, auditRepo, mutationExecutor)
	eventUseCase := event.NewPublishEventUseCase(eventRepo, creditTxExecutor, cfg.BaseEventCapacity)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	router := clublyhttp.NewRouter(
		handler.NewAuthHandler(loginUseCase),
		handler.NewAdminHandler(adminUseCase),
		handler.NewEventHandler(eventUseCase),
		authMiddleware,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		structuredLogger.Info(ctx, "Starting server", map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			structuredLogger.Error(ctx, "Server failed to start", err, map[string]interface{}{
				"host": cfg.ServerHost,
				"port": cfg.ServerPort,
			})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	structuredLogger.Info(ctx, "Shutting down server...", map[string]interface{}{})

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Server forced to shutdown", err, map[string]interface{}{})
	}
	structuredLogger.Info(ctx, "Server exited", map[string]interface{}{})
}
