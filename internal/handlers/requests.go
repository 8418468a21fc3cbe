package handlers

import (
	"net/http"

	"github.com/diewo77/go-artisans/auth"
	"github.com/diewo77/go-artisans/httpx"
	"github.com/diewo77/go-artisans/internal/models"
	"github.com/diewo77/go-artisans/internal/services"
)

type RequestHandler struct {
	requests *services.RequestService
}

func NewRequestHandler(requests *services.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.NewRequestInput
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		httpx.WriteError(w, err)
		return
	}
	req, err := h.requests.Create(r.Context(), in)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"request": req})
}

func (h *RequestHandler) ListForArtisan(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.UserIDFromContext(r.Context())
	reqs, err := h.requests.ListForArtisan(r.Context(), r.PathValue("artisanId"), callerID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"requests": reqs})
}

func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.UserIDFromContext(r.Context())
	var in struct {
		Status models.RequestStatus `json:"status"`
	}
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		httpx.WriteError(w, err)
		return
	}
	req, err := h.requests.UpdateStatus(r.Context(), r.PathValue("id"), in.Status, callerID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"request": req})
}
