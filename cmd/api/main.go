package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/anandaputra/layanan-tracker/internal/config"
	"github.com/anandaputra/layanan-tracker/internal/handler"
	"github.com/anandaputra/layanan-tracker/internal/infra/postgresql"
	"github.com/anandaputra/layanan-tracker/internal/infra/postgresql/migrations"
	infraredis "github.com/anandaputra/layanan-tracker/internal/infra/redis"
	"github.com/anandaputra/layanan-tracker/internal/observability"
	"github.com/anandaputra/layanan-tracker/internal/provider"
	"github.com/anandaputra/layanan-tracker/internal/ratelimit"
	"github.com/anandaputra/layanan-tracker/internal/repository"
	"github.com/anandaputra/layanan-tracker/internal/service"
	"github.com/anandaputra/layanan-tracker/internal/transport"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	db, err := postgresql.NewPostgres(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("postgres initialization failed", zap.Error(err))
	}

	if err := migrations.Migrate(db); err != nil {
		logger.Fatal("database migrations failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("postgres underlying db init failed", zap.Error(err))
	}
	defer sqlDB.Close()

	// The login counter is shared across instances only when Redis is
	// configured; a single-instance deployment runs in memory.
	var rdb *goredis.Client
	var limiter ratelimit.LoginLimiter
	lockoutWindow := time.Duration(cfg.LoginLockoutMinutes) * time.Minute
	if cfg.RedisURL != "" {
		rdb, err = infraredis.NewClient(cfg.RedisURL)
		if err != nil {
			logger.Fatal("redis initialization failed", zap.Error(err))
		}
		defer rdb.Close()

		limiter, err = infraredis.NewLoginLimiter(rdb, cfg.LoginMaxAttempts, lockoutWindow)
		if err != nil {
			logger.Fatal("redis login limiter initialization failed", zap.Error(err))
		}
	} else {
		limiter = ratelimit.NewMemoryLoginLimiter(cfg.LoginMaxAttempts, lockoutWindow)
	}

	whatsapp, err := provider.NewWhatsAppProvider(cfg.WhatsAppAPIURL, cfg.WhatsAppAPIToken)
	if err != nil {
		logger.Fatal("whatsapp provider initialization failed", zap.Error(err))
	}

	adminRepo := repository.NewGormAdminRepo(db)
	submissionRepo := repository.NewGormSubmissionRepo(db)
	logRepo := repository.NewGormNotificationLogRepo(db)

	authService, err := service.NewAuthService(adminRepo, limiter, cfg.BcryptCost, logger)
	if err != nil {
		logger.Fatal("auth service initialization failed", zap.Error(err))
	}
	submissionService, err := service.NewSubmissionService(submissionRepo, logRepo, whatsapp, logger)
	if err != nil {
		logger.Fatal("submission service initialization failed", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	authService.SetMetrics(metrics)
	submissionService.SetMetrics(metrics)

	app := fiber.New(fiber.Config{
		ErrorHandler:          transport.ErrorHandler(logger),
		DisableStartupMessage: true,
	})
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && id != "" {
			c.SetUserContext(observability.WithRequestID(c.UserContext(), id))
		}
		return c.Next()
	})
	app.Use(metrics.HTTPMiddleware())

	handler.RegisterHealthRoutes(app, sqlDB, rdb)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	if err := handler.RegisterAuthRoutes(app, authService); err != nil {
		logger.Fatal("auth routes registration failed", zap.Error(err))
	}
	if err := handler.RegisterSubmissionRoutes(app, submissionService); err != nil {
		logger.Fatal("submission routes registration failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("api started", zap.Int("port", cfg.APIPort))
		return app.Listen(fmt.Sprintf(":%d", cfg.APIPort))
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := group.Wait(); err != nil {
		logger.Fatal("api terminated", zap.Error(err))
	}
}
