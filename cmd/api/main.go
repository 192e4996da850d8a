package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/config"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/handler"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/infra/cache"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/infra/db"
	infraRepo "github.com/Larissa2801/Projeto-UaiFood-Back/internal/infra/repository"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/infra/telemetry"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/middleware"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/server"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/usecase"
	auth "github.com/Larissa2801/Projeto-UaiFood-Back/internal/usecase/auth_usecase"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/pflag"
)

const bcryptCost = 12

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	configPath := pflag.String("config", "", "path to a YAML config file")
	migrate := pflag.Bool("migrate", true, "run database migrations on start")
	seedAdmin := pflag.Bool("seed-admin", false, "create the ADMIN account from ADMIN_EMAIL / ADMIN_PASSWORD and exit")
	pflag.Parse()

	if err := run(*configPath, *migrate, *seedAdmin); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, migrate, seedAdmin bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	//.env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env", "error", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)
	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var tel *telemetry.Telemetry
	if cfg.Otel.Enabled {
		t, err := telemetry.New(ctx, cfg.Otel, cfg.App)
		if err != nil {
			logger.Warn("failed to initialize telemetry", "error", err)
		} else {
			tel = t
		}
	}

	gormDB, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			logger.Error("database close error", "error", err)
		}
	}()

	if migrate || seedAdmin {
		if err := db.Migrate(gormDB); err != nil {
			return err
		}
	}
	if seedAdmin {
		return db.SeedAdmin(ctx, gormDB, cfg.Admin)
	}

	rdb, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		//rate limiting falls back to in-process counters
		logger.Warn("redis unavailable", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Error("redis close error", "error", err)
			}
		}()
	}

	//repositories
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	itemRepo := infraRepo.NewItemGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	hasher := auth.NewBcryptPasswordHasher(bcryptCost)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := auth.NewJWTIssuer(cfg.JWT)

	//usecases
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, &realClock{})
	userUC := usecase.NewUserUsecase(txm, userRepo, hasher)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	itemUC := usecase.NewItemUsecase(itemRepo)
	orderUC := usecase.NewOrderUsecase(txm)
	adminOrderUC := usecase.NewAdminOrderUsecase(txm)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)

	var globalLimit, loginLimit echo.MiddlewareFunc
	if cfg.RateLimit.Enabled {
		globalLimit = middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
			Limit:    middleware.PerWindow(cfg.RateLimit.Requests, cfg.RateLimit.Burst, cfg.RateLimit.Window),
			FailOpen: cfg.RateLimit.FailOpen,
		}).Middleware()
		loginLimit = middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
			Limit:    middleware.PerWindow(cfg.RateLimit.LoginRequests, cfg.RateLimit.LoginRequests, cfg.RateLimit.Window),
			Prefix:   "ratelimit:login",
			FailOpen: cfg.RateLimit.FailOpen,
		}).Middleware()
	}

	checks := map[string]handler.HealthCheck{
		"database": func(ctx context.Context) error { return db.Ping(ctx, gormDB) },
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	srv := server.New(cfg, logger, globalLimit)
	srv.RegisterRoutes(server.Handlers{
		Health:     handler.NewHealthHandler(checks),
		Auth:       handler.NewAuthHandler(loginUC),
		User:       handler.NewUserHandler(registerUC, userUC),
		Address:    handler.NewAddressHandler(addressUC),
		Category:   handler.NewCategoryHandler(categoryUC),
		Item:       handler.NewItemHandler(itemUC),
		Order:      handler.NewOrderHandler(orderUC),
		AdminOrder: handler.NewAdminOrderHandler(adminOrderUC),
		AuditLog:   handler.NewAuditLogHandler(auditUC),
	}, handler.NewGuards(cfg.JWT, userRepo, loginLimit))

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if tel != nil {
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
