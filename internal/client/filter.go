package client

import "github.com/diewo77/go-artisans/internal/models"

// Filters are the refinements picked on the search screen.
type Filters struct {
	Availability string
	MinRating    float64
	PriceRange   string
	// MaxDistance is shown and stored but never applied: profiles carry no
	// coordinates to measure against.
	MaxDistance string
}

// Criteria is a full search: trade category plus filters.
type Criteria struct {
	Category string
	Filters  Filters
}

// Match reports whether a satisfies every set criterion. Comparisons are
// exact; MinRating is a lower bound.
func (c Criteria) Match(a *models.ArtisanProfile) bool {
	if c.Category != "" && a.Trade != c.Category {
		return false
	}
	f := c.Filters
	if f.Availability != "" && a.Availability != f.Availability {
		return false
	}
	if f.MinRating != 0 && a.Rating < f.MinRating {
		return false
	}
	if f.PriceRange != "" && a.PriceRange != f.PriceRange {
		return false
	}
	return true
}

// Apply returns the matching artisans in their original order. The result is
// never nil.
func (c Criteria) Apply(artisans []models.ArtisanProfile) []models.ArtisanProfile {
	out := make([]models.ArtisanProfile, 0, len(artisans))
	for i := range artisans {
		if c.Match(&artisans[i]) {
			out = append(out, artisans[i])
		}
	}
	return out
}
