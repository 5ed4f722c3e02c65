package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/upb/dashboard-api/app"
	"github.com/upb/dashboard-api/internal/observability"
	"github.com/upb/dashboard-api/middleware"
	"github.com/upb/dashboard-api/services"
	"github.com/upb/dashboard-api/utils"
	"go.uber.org/zap"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	cfg := deps.Config
	logger := deps.Logger
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	if cfg.Server.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(observability.RequestLogger(deps.Logger, middleware.RequestIDFromRequest))
	r.Use(chimw.Recoverer)
	if cfg.Server.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.Server.RequestTimeout))
	}
	r.Use(middleware.SecureHeaders(cfg.IsProduction()))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/healthz", deps.HealthHandler.HandleHealth)
	r.Get("/readyz", deps.HealthHandler.HandleReadiness)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	// Login is the only unauthenticated application endpoint
	r.Group(func(r chi.Router) {
		if cfg.Auth.LoginRateLimit > 0 {
			r.Use(httprate.Limit(
				cfg.Auth.LoginRateLimit,
				cfg.Auth.LoginRateWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					logWriteErr(logger, r, utils.WriteTooManyRequests(w, services.MsgRateLimitExceeded))
				}),
			))
		}
		r.Post("/login", deps.AuthHandler.HandleLogin)
	})

	// Admin-only surfaces
	r.Group(func(r chi.Router) {
		r.Use(deps.AuthMiddleware.RequireAdmin)
		r.Get("/dashboard", deps.DashboardHandler.HandleDashboard)
		r.Get("/api/users", deps.UserHandler.HandleListUsers)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		logWriteErr(logger, r, utils.WriteNotFound(w, "Not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		logWriteErr(logger, r, utils.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed"))
	})

	return r
}

func logWriteErr(logger *zap.Logger, r *http.Request, err error) {
	if err != nil {
		logger.Error("failed to write response",
			zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
}
