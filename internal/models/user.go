package models

import "time"

// UserType distinguishes marketplace clients from artisans.
type UserType string

const (
	UserTypeClient  UserType = "client"
	UserTypeArtisan UserType = "artisan"
)

// Valid reports whether t is one of the known user types.
func (t UserType) Valid() bool {
	return t == UserTypeClient || t == UserTypeArtisan
}

// UserAccount is the denormalized profile stored next to the identity
// provider's own record. ID is the provider-issued user id.
type UserAccount struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	UserType  UserType  `json:"userType"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// IsArtisan reports whether the account owns an artisan profile.
func (u *UserAccount) IsArtisan() bool {
	return u.UserType == UserTypeArtisan
}
