package handlers

import (
	"net/http"

	"github.com/diewo77/go-artisans/auth"
	"github.com/diewo77/go-artisans/httpx"
	"github.com/diewo77/go-artisans/internal/apperr"
	"github.com/diewo77/go-artisans/internal/models"
	"github.com/diewo77/go-artisans/internal/services"
)

type ArtisanHandler struct {
	artisans *services.ArtisanService
}

func NewArtisanHandler(artisans *services.ArtisanService) *ArtisanHandler {
	return &ArtisanHandler{artisans: artisans}
}

// List accepts ?trade= and ?available=true.
func (h *ArtisanHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	artisans, err := h.artisans.List(r.Context(), services.ListFilter{
		Trade:         q.Get("trade"),
		OnlyAvailable: q.Get("available") == "true",
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"artisans": artisans})
}

func (h *ArtisanHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.artisans.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"artisan": a})
}

func (h *ArtisanHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	if err := h.artisans.AuthorizeUpdate(r.Context(), id, callerID); err != nil {
		httpx.WriteError(w, err)
		return
	}
	body, err := httpx.ReadBody(w, r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	upd, err := models.DecodeArtisanUpdate(body)
	if err != nil {
		httpx.WriteError(w, apperr.Validation(err.Error()))
		return
	}

	a, err := h.artisans.Update(r.Context(), id, callerID, upd)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"artisan": a})
}
