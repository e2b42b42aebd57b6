package stubserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/sajilokaam/client-core/internal/core/domain"
)

// Options configures the stub backend.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	Repo      UserRepository
	Log       zerolog.Logger

	// EnableMetrics mounts the echoprometheus middleware and /metrics. It is
	// off by default because the prometheus default registry rejects duplicate
	// registration when several servers exist in one process.
	EnableMetrics bool
}

// New builds the Echo instance with all stub routes registered.
func New(opts Options) *echo.Echo {
	repo := opts.Repo
	if repo == nil {
		repo = NewMemoryUserRepository()
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = newHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	if opts.EnableMetrics {
		e.Use(echoprometheus.NewMiddleware("sajilokaam_stub"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Dependencies ---
	authService := NewAuthService(repo, opts.JWTSecret, opts.TokenTTL)
	authHandler := NewAuthHandler(authService)
	jobsHandler := NewJobsHandler()
	authRequired := Auth(opts.JWTSecret)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me, authRequired)
	api.PUT("/auth/me", authHandler.UpdateMe, authRequired)

	// --- Jobs board ---
	api.GET("/jobs", jobsHandler.List)
	api.GET("/jobs/:id", jobsHandler.Get)
	api.POST("/jobs", jobsHandler.Create, authRequired, rbacJobPosters())

	// --- Health probe (no auth required) ---
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return e
}

// errorResponse is the canonical error envelope for all stub API errors. The
// client core reads the "message" key first, so that is what we emit.
type errorResponse struct {
	Message string `json:"message"`
}

// newHTTPErrorHandler maps known stub errors to deterministic HTTP codes, logs
// unexpected errors, and renders the {"message": ...} envelope.
func newHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, ErrInvalidRole):
		return http.StatusBadRequest, fmt.Sprintf("role must be %s or %s", domain.RoleClient, domain.RoleFreelancer)
	case errors.Is(err, ErrJobNotFound):
		return http.StatusNotFound, "job not found"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
