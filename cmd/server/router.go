package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/stash-api/internal/api"
	apiMiddleware "github.com/phrazzld/stash-api/internal/api/middleware"
)

// setupRouter creates the application router with global middleware, the
// API routes and the operational endpoints.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if app.config.Server.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	// outside Recoverer so recovered panics are counted as 500s
	r.Use(app.metrics.Instrument)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.Server.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	routes := api.Routes{
		Index:        api.NewIndexHandler("stash-api", Version, app.logger),
		Auth:         api.NewAuthHandler(app.authService, app.logger),
		Users:        api.NewUserHandler(app.userService, app.itemService, app.logger),
		Items:        api.NewItemHandler(app.itemService, app.logger),
		Authenticate: apiMiddleware.NewAuthMiddleware(app.jwtService).Authenticate,
		Session:      apiMiddleware.NewSessionMiddleware(app.scope, app.config.Server.RequestTimeout()),
	}
	if rate := app.config.Server.LoginRatePerMinute; rate > 0 {
		routes.LoginLimit = apiMiddleware.NewRateLimiter(rate, app.config.Server.LoginBurst,
			app.metrics.LoginThrottled).Limit
	}
	api.RegisterRoutes(r, routes)

	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	return r
}
