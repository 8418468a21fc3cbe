package handlers

import (
	"net/http"

	"github.com/diewo77/go-artisans/auth"
	"github.com/diewo77/go-artisans/httpx"
	"github.com/diewo77/go-artisans/internal/services"
)

type AuthHandler struct {
	identity *services.IdentityService
}

func NewAuthHandler(identity *services.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var in services.SignupInput
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		httpx.WriteError(w, err)
		return
	}
	userID, err := h.identity.Signup(r.Context(), in)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{
		"message": "User created successfully",
		"userId":  userID,
	})
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		httpx.WriteError(w, err)
		return
	}
	res, err := h.identity.Signin(r.Context(), in.Email, in.Password)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

// Me validates the bearer token itself so a missing token and a rejected
// one get distinct messages.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.identity.CurrentUser(r.Context(), auth.BearerToken(r))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"user": user})
}
