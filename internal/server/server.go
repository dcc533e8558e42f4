package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hongminglow/attendance-be/internal/auth"
	"github.com/hongminglow/attendance-be/internal/config"
	"github.com/hongminglow/attendance-be/internal/http/handlers"
	"github.com/hongminglow/attendance-be/internal/middleware"
	"github.com/hongminglow/attendance-be/internal/models"
	"github.com/hongminglow/attendance-be/internal/service"
	"github.com/hongminglow/attendance-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner    *http.Server
	accounts *service.AccountService
	cfg      config.Config
	logger   *slog.Logger
}

// New wires up services, middleware and routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, logger *slog.Logger) *Server {
	hasher := auth.NewHasher()
	if cfg.PasswordHashing == config.HashingPlaintext {
		hasher = auth.NewPlaintextHasher()
	}
	accounts := service.NewAccountService(store, hasher, cfg.StoreTimeout, logger)
	attendance := service.NewAttendanceService(store, cfg.Location, cfg.StoreTimeout, logger)
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(accounts, tokenManager, logger).Register(mux)
	handlers.NewAttendanceHandler(attendance, time.Now, logger).Register(mux)

	var guard func(http.Handler) http.Handler
	if cfg.AdminAuthRequired {
		guard = middleware.RequireRole(tokenManager, models.RoleAdmin)
	}
	handlers.NewAdminHandler(accounts, attendance, logger).Register(mux, guard)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(logger, mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	return &Server{inner: httpServer, accounts: accounts, cfg: cfg, logger: logger}
}

// Handler returns the routes wrapped in CORS and request logging.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Bootstrap seeds the configured admin account, if any.
func (s *Server) Bootstrap(ctx context.Context) error {
	if s.cfg.AdminEmail == "" {
		return nil
	}
	return s.accounts.EnsureAdmin(ctx, s.cfg.AdminEmail, s.cfg.AdminPassword)
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
