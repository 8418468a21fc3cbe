package handlers

import (
	"net/http"

	"github.com/diewo77/go-artisans/httpx"
	"github.com/diewo77/go-artisans/internal/services"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	trades *services.TradeCatalog
	seeder *services.DemoSeeder
	logger *zap.Logger
}

func NewCatalogHandler(trades *services.TradeCatalog, seeder *services.DemoSeeder, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{trades: trades, seeder: seeder, logger: logger}
}

func (h *CatalogHandler) Health(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *CatalogHandler) Trades(w http.ResponseWriter, r *http.Request) {
	trades, err := h.trades.List(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"trades": trades})
}

// InitDemoData seeds the demo artisans once.
func (h *CatalogHandler) InitDemoData(w http.ResponseWriter, r *http.Request) {
	res, err := h.seeder.Seed(r.Context())
	if err != nil {
		h.logger.Error("init demo data", zap.Error(err))
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}
