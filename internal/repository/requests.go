package repository

import (
	"context"

	"github.com/diewo77/go-artisans/internal/kv"
	"github.com/diewo77/go-artisans/internal/models"
)

// RequestRepository stores ClientRequest documents partitioned by artisan.
type RequestRepository struct {
	store kv.Store
}

func NewRequestRepository(store kv.Store) *RequestRepository {
	return &RequestRepository{store: store}
}

// Save writes req under its artisan's partition.
func (r *RequestRepository) Save(ctx context.Context, req *models.ClientRequest) error {
	return kv.SetJSON(ctx, r.store, requestKey(req.ArtisanID, req.ID), req)
}

// ListByOwner returns every request addressed to artisanID, in storage key
// order. Entries whose ArtisanID differs are skipped: an id such as "a1:x"
// shares the "a1:" key prefix. The result is never nil.
func (r *RequestRepository) ListByOwner(ctx context.Context, artisanID string) ([]models.ClientRequest, error) {
	items, err := kv.ListJSON[models.ClientRequest](ctx, r.store, requestOwnerPrefix(artisanID))
	if err != nil {
		return nil, err
	}
	out := make([]models.ClientRequest, 0, len(items))
	for _, it := range items {
		if it.Value.ArtisanID != artisanID {
			continue
		}
		out = append(out, it.Value)
	}
	return out, nil
}

// FindByOwner looks a request up inside artisanID's partition only. A request
// stored under another artisan yields ErrNotFound.
func (r *RequestRepository) FindByOwner(ctx context.Context, artisanID, requestID string) (*models.ClientRequest, error) {
	reqs, err := r.ListByOwner(ctx, artisanID)
	if err != nil {
		return nil, err
	}
	for i := range reqs {
		if reqs[i].ID == requestID {
			return &reqs[i], nil
		}
	}
	return nil, ErrNotFound
}
