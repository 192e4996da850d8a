package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/config"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/infra/telemetry"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/middleware"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo   *echo.Echo
	cfg    config.Config
	logger *slog.Logger
}

// New builds the echo instance with the global middleware chain. Routes are
// added afterwards with RegisterRoutes.
func New(cfg config.Config, logger *slog.Logger, rateLimit echo.MiddlewareFunc) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger, telemetry.TraceID))
	e.Use(echomw.BodyLimit("1M"))
	e.Use(echomw.SecureWithConfig(echomw.SecureConfig{
		XSSProtection:      "0",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         hstsMaxAge(cfg),
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderXRequestID},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))
	if rateLimit != nil {
		e.Use(rateLimit)
	}

	return &Server{echo: e, cfg: cfg, logger: logger}
}

func (s *Server) Echo() *echo.Echo { return s.echo }

// Start blocks until the server stops. A graceful shutdown returns nil.
func (s *Server) Start() error {
	addr := s.cfg.Addr()
	s.logger.Info("http server listening", "addr", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Server.ShutdownTimeout)
	defer cancel()
	s.logger.Info("http server shutting down")
	return s.echo.Shutdown(ctx)
}

func hstsMaxAge(cfg config.Config) int {
	if cfg.IsProduction() {
		return int((365 * 24 * time.Hour).Seconds())
	}
	return 0
}
