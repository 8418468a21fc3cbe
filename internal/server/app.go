// Package server assembles the HTTP API: routes, middleware chain and
// handler wiring.
package server

import (
	"net/http"

	"github.com/diewo77/go-artisans/auth"
	"github.com/diewo77/go-artisans/internal/logging"
	"github.com/diewo77/go-artisans/internal/policy"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux       *http.ServeMux
	routerCfg *policy.RouterConfig
	handler   http.Handler
}

// Options tunes the middleware chain.
type Options struct {
	AllowedOrigins []string
}

// NewApp creates a new application with all routes configured.
func NewApp(routerCfg *policy.RouterConfig, logger *zap.Logger, opts Options) *App {
	app := &App{
		mux:       http.NewServeMux(),
		routerCfg: routerCfg,
	}
	app.setupRoutes()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// Outermost first.
	var h http.Handler = auth.Middleware(routerCfg.Identity)(app.mux)
	h = cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           600,
	})(h)
	h = logging.Middleware(logger)(h)
	h = middleware.Recoverer(h)
	h = middleware.RequestID(h)
	app.handler = h
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	ah := a.routerCfg.AuthHandler
	arh := a.routerCfg.ArtisanHandler
	rh := a.routerCfg.RequestHandler
	ch := a.routerCfg.CatalogHandler

	// Public routes
	a.mux.HandleFunc("GET /health", ch.Health)
	a.mux.HandleFunc("POST /auth/signup", ah.Signup)
	a.mux.HandleFunc("POST /auth/signin", ah.Signin)
	a.mux.HandleFunc("GET /auth/me", ah.Me)
	a.mux.HandleFunc("GET /artisans", arh.List)
	a.mux.HandleFunc("GET /artisans/{id}", arh.Get)
	a.mux.HandleFunc("POST /requests", rh.Create)
	a.mux.HandleFunc("GET /trades", ch.Trades)
	a.mux.HandleFunc("POST /init-demo-data", ch.InitDemoData)

	// Authenticated routes; ownership is checked by the services.
	a.mux.Handle("PUT /artisans/{id}", auth.RequireAuth(http.HandlerFunc(arh.Update)))
	a.mux.Handle("GET /requests/artisan/{artisanId}", auth.RequireAuth(http.HandlerFunc(rh.ListForArtisan)))
	a.mux.Handle("PUT /requests/{id}", auth.RequireAuth(http.HandlerFunc(rh.UpdateStatus)))
}
