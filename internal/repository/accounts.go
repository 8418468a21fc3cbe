package repository

import (
	"context"

	"github.com/diewo77/go-artisans/internal/kv"
	"github.com/diewo77/go-artisans/internal/models"
)

// AccountWriter writes everything signup creates in one atomic batch.
type AccountWriter struct {
	store kv.Store
}

func NewAccountWriter(store kv.Store) *AccountWriter {
	return &AccountWriter{store: store}
}

// Create stores the account and, for artisans, its profile and email lookup.
// Either all entries are written or none.
func (w *AccountWriter) Create(ctx context.Context, u *models.UserAccount, profile *models.ArtisanProfile) error {
	entries := make([]kv.Entry, 0, 3)
	e, err := kv.JSONEntry(userKey(u.ID), u)
	if err != nil {
		return err
	}
	entries = append(entries, e)

	if profile != nil {
		if e, err = kv.JSONEntry(artisanKey(profile.ID), profile); err != nil {
			return err
		}
		entries = append(entries, e)
		if e, err = kv.JSONEntry(artisanEmailKey(u.Email), profile.ID); err != nil {
			return err
		}
		entries = append(entries, e)
	}
	return w.store.SetMany(ctx, entries)
}
