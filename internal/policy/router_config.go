package policy

import (
	"github.com/diewo77/go-artisans/internal/gate"
	"github.com/diewo77/go-artisans/internal/handlers"
	"github.com/diewo77/go-artisans/internal/identity"
	"github.com/diewo77/go-artisans/internal/kv"
	"github.com/diewo77/go-artisans/internal/services"
	"go.uber.org/zap"
)

// RouterConfig holds configured handlers and services for the application.
type RouterConfig struct {
	// Gate holds the self-only policies for profiles and requests.
	Gate *gate.Gate[string]

	AuthHandler    *handlers.AuthHandler
	ArtisanHandler *handlers.ArtisanHandler
	RequestHandler *handlers.RequestHandler
	CatalogHandler *handlers.CatalogHandler

	// Identity also verifies bearer tokens for auth.Middleware.
	Identity *services.IdentityService
	Seeder   *services.DemoSeeder
}

// NewRouterConfig wires services and handlers over one key-value store and
// identity provider. defaultCity is the location given to new artisan
// profiles.
//
// Example usage in your router setup:
//
//	cfg := policy.NewRouterConfig(store, provider, "Lubumbashi", logger)
//	mux.HandleFunc("GET /artisans/{id}", cfg.ArtisanHandler.Get)
//	mux.Handle("PUT /artisans/{id}", auth.RequireAuth(http.HandlerFunc(cfg.ArtisanHandler.Update)))
func NewRouterConfig(store kv.Store, provider identity.Provider, defaultCity string, logger *zap.Logger) *RouterConfig {
	g := NewGate()

	identitySvc := services.NewIdentityService(provider, store, defaultCity, logger.Named("identity"))
	artisanSvc := services.NewArtisanService(store, g)
	requestSvc := services.NewRequestService(store, g)
	trades := services.NewTradeCatalog(store)
	seeder := services.NewDemoSeeder(provider, store, logger.Named("demo"))

	return &RouterConfig{
		Gate:           g,
		AuthHandler:    handlers.NewAuthHandler(identitySvc),
		ArtisanHandler: handlers.NewArtisanHandler(artisanSvc),
		RequestHandler: handlers.NewRequestHandler(requestSvc),
		CatalogHandler: handlers.NewCatalogHandler(trades, seeder, logger.Named("catalog")),
		Identity:       identitySvc,
		Seeder:         seeder,
	}
}
