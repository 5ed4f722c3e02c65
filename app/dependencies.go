package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/upb/dashboard-api/auth"
	"github.com/upb/dashboard-api/config"
	"github.com/upb/dashboard-api/handlers"
	"github.com/upb/dashboard-api/internal/observability"
	"github.com/upb/dashboard-api/internal/view"
	"github.com/upb/dashboard-api/middleware"
	"github.com/upb/dashboard-api/repositories"
	"github.com/upb/dashboard-api/repositories/postgres"
	"github.com/upb/dashboard-api/services"
	"github.com/upb/dashboard-api/token"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config  *config.Config
	DB      *postgres.DB
	Logger  *zap.Logger
	Metrics *observability.Metrics

	RepoFactory *postgres.RepositoryFactory
	Users       repositories.UserRepository

	// Auth
	Codec          *token.Codec
	AuthMiddleware *middleware.AuthMiddleware

	// Services
	AuthService *services.AuthService
	UserService *services.UserService

	// HTTP handlers
	AuthHandler      *auth.Handler
	UserHandler      *handlers.UserHandler
	DashboardHandler *handlers.DashboardHandler
	HealthHandler    *handlers.HealthHandler
}

// NewDependencies connects to PostgreSQL, applies migrations when enabled and
// wires every component on top of the connection.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	repos := deps.RepoFactory.NewRepositories()
	if err := deps.wire(repos.Users); err != nil {
		_ = deps.RepoFactory.Close()
		return nil, err
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// NewDependenciesWithRepository wires every component over an already open
// connection or an injected repository. db may be nil, in which case
// readiness reports not ready. A nil users falls back to the PostgreSQL
// repository over db.
func NewDependenciesWithRepository(cfg *config.Config, logger *zap.Logger, users repositories.UserRepository, db *postgres.DB) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
		DB:     db,
	}
	if db != nil {
		deps.RepoFactory = postgres.NewRepositoryFactoryFromDB(db, logger)
		if users == nil {
			users = deps.RepoFactory.NewRepositories().Users
		}
	}
	if err := deps.wire(users); err != nil {
		return nil, err
	}
	return deps, nil
}

// initDatabase initializes the PostgreSQL connection and repository factory
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	factory, err := postgres.NewRepositoryFactory(cfg.Database, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}

	d.RepoFactory = factory
	d.DB = factory.GetDB()

	if err := d.DB.HealthCheck(ctx); err != nil {
		_ = factory.Close()
		return err
	}

	if cfg.Database.AutoMigrate {
		if err := d.DB.Migrate(); err != nil {
			_ = factory.Close()
			return err
		}
	}

	return nil
}

func (d *Dependencies) wire(users repositories.UserRepository) error {
	if users == nil {
		return errors.New("user repository is required")
	}
	cfg := d.Config
	d.Users = users

	if cfg.Observability.MetricsEnabled {
		d.Metrics = observability.NewMetrics()
	}

	if err := d.initAuth(cfg); err != nil {
		return fmt.Errorf("failed to initialize auth: %w", err)
	}

	d.UserService = services.NewUserService(users, cfg.API.MaxPageSize, d.Logger)
	d.UserHandler = handlers.NewUserHandler(d.UserService, d.Logger)

	engine, err := view.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to initialize templates: %w", err)
	}
	d.DashboardHandler = handlers.NewDashboardHandler(engine, d.Logger)

	if d.DB != nil {
		d.HealthHandler = handlers.NewHealthHandler(d.DB, d.Logger)
	} else {
		d.HealthHandler = handlers.NewHealthHandler(nil, d.Logger)
	}

	return nil
}

func (d *Dependencies) initAuth(cfg *config.Config) error {
	codec, err := token.NewCodec(token.Config{
		Secret: []byte(cfg.Auth.JWTSecret),
		TTL:    cfg.Auth.TokenTTL,
		Issuer: cfg.Auth.TokenIssuer,
	})
	if err != nil {
		return err
	}
	d.Codec = codec

	opts := []middleware.Option{
		middleware.WithRejectionStatus(middleware.StatusForMode(cfg.Auth.StatusMode)),
	}
	var loginRecorder auth.LoginRecorder
	if d.Metrics != nil {
		opts = append(opts, middleware.WithDecisionRecorder(d.Metrics))
		loginRecorder = d.Metrics
	}
	d.AuthMiddleware = middleware.NewAuthMiddleware(codec, d.Logger, opts...)

	d.AuthService = services.NewAuthService(d.Users, codec, d.Logger)
	d.AuthHandler = auth.NewHandler(d.AuthService, loginRecorder, d.Logger)

	d.Logger.Info("auth initialized",
		zap.Duration("token_ttl", cfg.Auth.TokenTTL),
		zap.String("status_mode", cfg.Auth.StatusMode))
	return nil
}

// Close releases all resources
func (d *Dependencies) Close(ctx context.Context) error {
	var errs []error

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	} else if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	d.Logger.Info("all dependencies closed successfully")
	return nil
}
