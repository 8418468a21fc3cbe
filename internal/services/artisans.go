package services

import (
	"context"
	"errors"
	"time"

	"github.com/diewo77/go-artisans/internal/apperr"
	"github.com/diewo77/go-artisans/internal/gate"
	"github.com/diewo77/go-artisans/internal/kv"
	"github.com/diewo77/go-artisans/internal/models"
	"github.com/diewo77/go-artisans/internal/repository"
	"github.com/diewo77/go-artisans/validation"
)

// ListFilter narrows an artisan listing. Zero values disable a filter.
type ListFilter struct {
	// Trade matches case-insensitively and exactly.
	Trade string
	// OnlyAvailable keeps profiles whose availability is exactly Disponible.
	OnlyAvailable bool
}

func (f ListFilter) match(a *models.ArtisanProfile) bool {
	if f.Trade != "" && !a.HasTrade(f.Trade) {
		return false
	}
	if f.OnlyAvailable && !a.IsAvailable() {
		return false
	}
	return true
}

// ArtisanService is the profile store.
type ArtisanService struct {
	artisans *repository.ArtisanRepository
	gate     *gate.Gate[string]
	now      func() time.Time
}

func NewArtisanService(store kv.Store, g *gate.Gate[string]) *ArtisanService {
	return &ArtisanService{
		artisans: repository.NewArtisanRepository(store),
		gate:     g,
		now:      time.Now,
	}
}

// List never fails on "no results"; it returns an empty slice.
func (s *ArtisanService) List(ctx context.Context, f ListFilter) ([]models.ArtisanProfile, error) {
	all, err := s.artisans.List(ctx)
	if err != nil {
		return nil, apperr.Store("list artisans", err)
	}
	out := make([]models.ArtisanProfile, 0, len(all))
	for i := range all {
		if f.match(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (s *ArtisanService) Get(ctx context.Context, id string) (*models.ArtisanProfile, error) {
	a, err := s.artisans.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Artisan not found")
	}
	if err != nil {
		return nil, apperr.Store("get artisan", err)
	}
	return a, nil
}

// AuthorizeUpdate reports whether callerID may update profile id. It does
// not check that the profile exists.
func (s *ArtisanService) AuthorizeUpdate(ctx context.Context, id, callerID string) error {
	if err := s.gate.Authorize(ctx, callerID, gate.ActionUpdate, ResourceArtisan, id); err != nil {
		return apperr.Unauthorized(msgUnauthorized)
	}
	return nil
}

// Update merges upd into the caller's own profile and stamps UpdatedAt.
// Only the owner may update a profile.
func (s *ArtisanService) Update(ctx context.Context, id, callerID string, upd models.ArtisanUpdate) (*models.ArtisanProfile, error) {
	if err := s.AuthorizeUpdate(ctx, id, callerID); err != nil {
		return nil, err
	}

	v := make(validation.Violations)
	if upd.ReviewCount != nil {
		validation.NonNegative("reviewCount", *upd.ReviewCount, v)
	}
	if upd.CompletedJobs != nil {
		validation.NonNegative("completedJobs", *upd.CompletedJobs, v)
	}
	if !v.Empty() {
		return nil, apperr.Invalid("Invalid profile fields", v)
	}

	a, err := s.artisans.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Artisan profile not found")
	}
	if err != nil {
		return nil, apperr.Store("get artisan", err)
	}

	upd.Apply(a)
	now := s.now()
	a.UpdatedAt = &now
	if err := s.artisans.Save(ctx, a); err != nil {
		return nil, apperr.Store("update artisan", err)
	}
	return a, nil
}
