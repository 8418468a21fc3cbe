package models

import (
	"strings"
	"time"
)

// Availability values an artisan can report.
const (
	AvailabilityAvailable = "Disponible"
	AvailabilityBusy      = "Occupé"
	AvailabilitySoon      = "Disponible dans 2 jours"
)

// Price tiers shown to clients.
const (
	PriceBudget   = "Économique"
	PriceStandard = "Moyen"
	PricePremium  = "Premium"
)

// Defaults applied to a profile created at artisan signup.
const (
	DefaultRating = 5.0
)

// ArtisanProfile is the public document describing a tradesperson.
// ID equals the owning UserAccount.ID.
type ArtisanProfile struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Trade         string     `json:"trade"`
	Skills        []string   `json:"skills"`
	PriceRange    string     `json:"priceRange"`
	HourlyRate    string     `json:"hourlyRate"`
	Availability  string     `json:"availability"`
	Location      string     `json:"location"`
	Verified      bool       `json:"verified"`
	Description   string     `json:"description"`
	Photo         string     `json:"photo"`
	Rating        float64    `json:"rating"`
	ReviewCount   int        `json:"reviewCount"`
	Experience    string     `json:"experience"`
	CompletedJobs int        `json:"completedJobs"`
	WhatsApp      string     `json:"whatsapp"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// NewArtisanProfile returns the default profile written at artisan signup.
func NewArtisanProfile(account UserAccount, location string, now time.Time) ArtisanProfile {
	return ArtisanProfile{
		ID:           account.ID,
		Name:         account.Name,
		Email:        account.Email,
		Phone:        account.Phone,
		Skills:       []string{},
		Availability: AvailabilityAvailable,
		Location:     location,
		Rating:       DefaultRating,
		WhatsApp:     account.Phone,
		CreatedAt:    now,
	}
}

// IsAvailable is the narrow "available now" check: only the exact
// Disponible value counts.
func (a *ArtisanProfile) IsAvailable() bool {
	return a.Availability == AvailabilityAvailable
}

// HasTrade compares trades case-insensitively.
func (a *ArtisanProfile) HasTrade(trade string) bool {
	return strings.EqualFold(a.Trade, trade)
}

// ArtisanUpdate is the allow-list of fields an artisan may change on their
// own profile. Nil fields are left untouched.
type ArtisanUpdate struct {
	Name          *string   `json:"name,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	Trade         *string   `json:"trade,omitempty"`
	Skills        *[]string `json:"skills,omitempty"`
	PriceRange    *string   `json:"priceRange,omitempty"`
	HourlyRate    *string   `json:"hourlyRate,omitempty"`
	Availability  *string   `json:"availability,omitempty"`
	Location      *string   `json:"location,omitempty"`
	Verified      *bool     `json:"verified,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Photo         *string   `json:"photo,omitempty"`
	Rating        *float64  `json:"rating,omitempty"`
	ReviewCount   *int      `json:"reviewCount,omitempty"`
	Experience    *string   `json:"experience,omitempty"`
	CompletedJobs *int      `json:"completedJobs,omitempty"`
	WhatsApp      *string   `json:"whatsapp,omitempty"`
}

// Apply overwrites every set field on p. ID, Email and CreatedAt are never
// touched.
func (u ArtisanUpdate) Apply(p *ArtisanProfile) {
	setString(&p.Name, u.Name)
	setString(&p.Phone, u.Phone)
	setString(&p.Trade, u.Trade)
	if u.Skills != nil {
		p.Skills = append([]string{}, (*u.Skills)...)
	}
	setString(&p.PriceRange, u.PriceRange)
	setString(&p.HourlyRate, u.HourlyRate)
	setString(&p.Availability, u.Availability)
	setString(&p.Location, u.Location)
	if u.Verified != nil {
		p.Verified = *u.Verified
	}
	setString(&p.Description, u.Description)
	setString(&p.Photo, u.Photo)
	if u.Rating != nil {
		p.Rating = *u.Rating
	}
	if u.ReviewCount != nil {
		p.ReviewCount = *u.ReviewCount
	}
	setString(&p.Experience, u.Experience)
	if u.CompletedJobs != nil {
		p.CompletedJobs = *u.CompletedJobs
	}
	setString(&p.WhatsApp, u.WhatsApp)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
