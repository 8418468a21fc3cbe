// Package db opens the gorm connection backing the SQL key-value store and
// the identity provider.
package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/diewo77/go-artisans/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	connectAttempts = 5
	connectBackoff  = 2 * time.Second
)

// Connect opens the configured database. Postgres gets a few attempts so the
// server can start alongside a database container that is still booting.
func Connect(cfg config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	switch strings.ToLower(cfg.Driver) {
	case config.DriverSQLite:
		logger.Info("opening sqlite database", zap.String("path", cfg.SQLitePath))
		return gorm.Open(sqlite.Open(cfg.SQLiteDSN()), gcfg)
	case config.DriverPostgres:
		logger.Info("connecting to database",
			zap.String("host", cfg.Host),
			zap.Int("port", cfg.Port),
			zap.String("dbname", cfg.DBName),
			zap.String("user", cfg.User))
		var (
			db  *gorm.DB
			err error
		)
		for i := 1; i <= connectAttempts; i++ {
			db, err = gorm.Open(postgres.Open(cfg.DSN()), gcfg)
			if err == nil {
				return db, nil
			}
			logger.Warn("database connection failed",
				zap.Int("attempt", i), zap.Int("of", connectAttempts), zap.Error(err))
			if i < connectAttempts {
				time.Sleep(connectBackoff)
			}
		}
		return nil, fmt.Errorf("database connection failed: %w", err)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
