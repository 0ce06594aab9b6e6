package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/stash-api/internal/config"
	"github.com/phrazzld/stash-api/internal/platform/metrics"
	"github.com/phrazzld/stash-api/internal/platform/postgres"
	"github.com/phrazzld/stash-api/internal/service"
	"github.com/phrazzld/stash-api/internal/service/auth"
	"github.com/phrazzld/stash-api/internal/store"
)

// application holds the shared dependencies and ensures their cleanup on
// shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	metrics *metrics.Metrics
	scope   *store.Scope
	stores  store.Factory

	jwtService auth.JWTService
	bcrypt     *auth.BcryptVerifier

	userService service.UserService
	itemService service.ItemService
	authService service.AuthService
}

// newApplication wires the services over an established connection pool.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		metrics: metrics.New(),
		stores:  postgres.NewFactory(logger),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.bcrypt = auth.NewBcryptVerifier(cfg.Auth.BCryptCost)
	app.scope = store.NewScope(db, app.metrics.Session(), logger)

	app.userService = service.NewUserService(app.stores, app.bcrypt, logger)
	app.itemService = service.NewItemService(app.stores, logger)
	app.authService = service.NewAuthService(app.stores, app.bcrypt, app.jwtService,
		cfg.Auth.TokenLifetime(), logger)

	return app, nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
