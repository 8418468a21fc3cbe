package services

import (
	"context"

	"github.com/diewo77/go-artisans/internal/apperr"
	"github.com/diewo77/go-artisans/internal/kv"
	"github.com/diewo77/go-artisans/internal/models"
	"github.com/diewo77/go-artisans/internal/repository"
)

// TradeCatalog computes the fixed trade list with live profile counts.
type TradeCatalog struct {
	artisans *repository.ArtisanRepository
}

func NewTradeCatalog(store kv.Store) *TradeCatalog {
	return &TradeCatalog{artisans: repository.NewArtisanRepository(store)}
}

// List tallies profiles by exact, case-sensitive trade name. Trades outside
// models.Catalog are not reported.
func (c *TradeCatalog) List(ctx context.Context) ([]models.Trade, error) {
	all, err := c.artisans.List(ctx)
	if err != nil {
		return nil, apperr.Store("list trades", err)
	}
	counts := make(map[string]int, len(models.Catalog))
	for _, a := range all {
		counts[a.Trade]++
	}
	out := make([]models.Trade, len(models.Catalog))
	for i, t := range models.Catalog {
		t.Count = counts[t.Name]
		out[i] = t
	}
	return out, nil
}
