package repository

import (
	"context"
	"errors"

	"github.com/diewo77/go-artisans/internal/kv"
	"github.com/diewo77/go-artisans/internal/models"
)

// ArtisanRepository stores ArtisanProfile documents.
type ArtisanRepository struct {
	store kv.Store
}

func NewArtisanRepository(store kv.Store) *ArtisanRepository {
	return &ArtisanRepository{store: store}
}

// Get returns ErrNotFound when no profile exists for id.
func (r *ArtisanRepository) Get(ctx context.Context, id string) (*models.ArtisanProfile, error) {
	a, err := kv.GetJSON[models.ArtisanProfile](ctx, r.store, artisanKey(id))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List scans every profile. The result is never nil.
func (r *ArtisanRepository) List(ctx context.Context) ([]models.ArtisanProfile, error) {
	items, err := kv.ListJSON[models.ArtisanProfile](ctx, r.store, artisanPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]models.ArtisanProfile, 0, len(items))
	for _, it := range items {
		out = append(out, it.Value)
	}
	return out, nil
}

// Count returns the number of stored profiles.
func (r *ArtisanRepository) Count(ctx context.Context) (int, error) {
	entries, err := r.store.GetByPrefix(ctx, artisanPrefix)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (r *ArtisanRepository) Save(ctx context.Context, a *models.ArtisanProfile) error {
	return kv.SetJSON(ctx, r.store, artisanKey(a.ID), a)
}
