package db

import (
	"fmt"

	"github.com/diewo77/go-artisans/internal/identity"
	"github.com/diewo77/go-artisans/internal/kv"
	"gorm.io/gorm"
)

// Migrate creates the key-value table and the identity provider's account
// table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&kv.Record{},
		&identity.Account{},
	); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	return nil
}
