package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubVerifier map[string]string

func (s stubVerifier) VerifyToken(_ context.Context, token string) (string, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return "", errors.New("invalid JWT")
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":  "abc",
		"bearer abc":  "abc",
		"Basic abc":   "",
		"Bearer":      "",
		"":            "",
		"Bearer  xyz": "xyz",
	}
	for header, want := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		if got := BearerToken(r); got != want {
			t.Errorf("BearerToken(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestMiddlewareAndRequireAuth(t *testing.T) {
	v := stubVerifier{"good": "u1"}
	var seen string
	h := Middleware(v)(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})))

	cases := []struct {
		header string
		status int
		body   string
	}{
		{"", http.StatusUnauthorized, `{"error":"No token provided"}`},
		{"Bearer bad", http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{"Bearer good", http.StatusNoContent, ""},
	}
	for _, tc := range cases {
		seen = ""
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			r.Header.Set("Authorization", tc.header)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, r)
		if rr.Code != tc.status {
			t.Errorf("%q: status %d, want %d", tc.header, rr.Code, tc.status)
		}
		if tc.body != "" && rr.Body.String() != tc.body {
			t.Errorf("%q: body %s", tc.header, rr.Body.String())
		}
		if tc.status == http.StatusUnauthorized && seen != "" {
			t.Errorf("%q: handler reached with identity %q", tc.header, seen)
		}
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer good")
	h.ServeHTTP(httptest.NewRecorder(), r)
	if seen != "u1" {
		t.Fatalf("expected u1 in context, got %q", seen)
	}
}

func TestUserIDFromContext_Empty(t *testing.T) {
	if _, ok := UserIDFromContext(context.Background()); ok {
		t.Fatal("expected no identity")
	}
	if _, ok := UserIDFromContext(WithUserID(context.Background(), "")); ok {
		t.Fatal("empty id must not count as identity")
	}
}
