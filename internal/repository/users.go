package repository

import (
	"context"
	"errors"

	"github.com/diewo77/go-artisans/internal/kv"
	"github.com/diewo77/go-artisans/internal/models"
)

// UserRepository stores the denormalized UserAccount documents.
type UserRepository struct {
	store kv.Store
}

func NewUserRepository(store kv.Store) *UserRepository {
	return &UserRepository{store: store}
}

// Get returns ErrNotFound when the account document is missing.
func (r *UserRepository) Get(ctx context.Context, id string) (*models.UserAccount, error) {
	u, err := kv.GetJSON[models.UserAccount](ctx, r.store, userKey(id))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
