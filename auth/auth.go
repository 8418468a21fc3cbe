// Package auth carries the caller's identity through a request. Tokens are
// read from the Authorization header and checked by a TokenVerifier; the
// resolved user id is stored in the request context.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/diewo77/go-artisans/httpx"
)

type ctxKey string

const (
	userIDCtxKey = ctxKey("userID")
	tokenCtxKey  = ctxKey("token")
)

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header,
// or "" when absent.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// WithUserID stores user id in context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDCtxKey, userID)
}

// UserIDFromContext extracts user id.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDCtxKey).(string)
	return id, ok && id != ""
}

func withToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey, token)
}

// TokenFromContext returns the raw bearer token seen by Middleware.
func TokenFromContext(ctx context.Context) string {
	t, _ := ctx.Value(tokenCtxKey).(string)
	return t
}

// Middleware attaches the user id to the request context when the bearer
// token is valid. Invalid or missing tokens are not rejected here.
func Middleware(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token != "" {
				ctx := withToken(r.Context(), token)
				if uid, err := v.VerifyToken(ctx, token); err == nil && uid != "" {
					ctx = WithUserID(ctx, uid)
				}
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth answers 401 unless Middleware resolved a user.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if TokenFromContext(r.Context()) == "" {
			httpx.JSONError(w, http.StatusUnauthorized, "No token provided", nil)
			return
		}
		if _, ok := UserIDFromContext(r.Context()); !ok {
			httpx.JSONError(w, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
