package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIs_MatchesByKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NotFound("Artisan not found"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected NotFound to match its sentinel")
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatal("NotFound must not match Unauthorized")
	}
	if errors.Is(err, NotFound("Artisan not found")) {
		t.Fatal("only sentinels match by kind")
	}
}

func TestKindOf(t *testing.T) {
	cause := errors.New("boom")
	cases := []struct {
		err  error
		want Kind
	}{
		{Validation("Missing required fields"), KindValidation},
		{Invalid("Invalid user type", map[string]string{"userType": "invalid"}), KindValidation},
		{Unauthorized("Unauthorized"), KindUnauthorized},
		{AuthProvider(cause), KindAuthProvider},
		{InvalidCredentials(cause), KindInvalidCredentials},
		{Store("save artisan", cause), KindStore},
		{cause, KindUnknown},
		{nil, KindUnknown},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Errorf("KindOf(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}

func TestMessages(t *testing.T) {
	cause := errors.New("Invalid login credentials")
	if got := InvalidCredentials(cause).Error(); got != "Invalid login credentials" {
		t.Fatalf("provider message not passed through: %q", got)
	}
	err := Store("save artisan", cause)
	if got := err.Error(); got != "save artisan: Invalid login credentials" {
		t.Fatalf("unexpected %q", got)
	}
	if !errors.Is(err, cause) {
		t.Fatal("Store must unwrap to its cause")
	}
}
