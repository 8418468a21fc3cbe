// Package identity is the credential side of authentication: it stores
// password hashes, verifies credentials and issues bearer tokens. The rest of
// the application only sees the Provider interface, so a managed provider can
// replace LocalProvider without touching services.
package identity

import (
	"context"
	"errors"
	"time"
)

// Provider error values. Their messages are shown to end users verbatim.
var (
	ErrEmailExists        = errors.New("A user with this email address has already been registered")
	ErrInvalidCredentials = errors.New("Invalid login credentials")
	ErrWeakPassword       = errors.New("Password should be at least 6 characters")
	ErrInvalidEmail       = errors.New("Unable to validate email address: invalid format")
	ErrInvalidToken       = errors.New("invalid JWT")
	ErrUserNotFound       = errors.New("User not found")
)

// Metadata is the free-form profile data the provider keeps with a user.
type Metadata struct {
	Name     string `json:"name"`
	UserType string `json:"userType"`
	Phone    string `json:"phone,omitempty"`
}

// User is the provider's view of an account.
type User struct {
	ID               string
	Email            string
	Metadata         Metadata
	EmailConfirmedAt *time.Time
	CreatedAt        time.Time
}

// Session is returned by a successful password sign-in.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	User        User
}

// CreateUserParams mirrors an admin "create user" call.
type CreateUserParams struct {
	Email        string
	Password     string
	Metadata     Metadata
	EmailConfirm bool
}

// Provider is the identity backend used by the auth gateway.
type Provider interface {
	CreateUser(ctx context.Context, p CreateUserParams) (*User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	// GetUser validates accessToken and returns its user.
	GetUser(ctx context.Context, accessToken string) (*User, error)
	DeleteUser(ctx context.Context, id string) error
}
