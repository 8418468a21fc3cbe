package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/diewo77/go-artisans/internal/config"
	"github.com/diewo77/go-artisans/internal/db"
	"github.com/diewo77/go-artisans/internal/identity"
	"github.com/diewo77/go-artisans/internal/kv"
	"github.com/diewo77/go-artisans/internal/logging"
	"github.com/diewo77/go-artisans/internal/policy"
	"github.com/diewo77/go-artisans/internal/server"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Seed demo artisans and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.App.Dev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	dbConn, err := db.Connect(cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if *migrateOnlyFlag {
		if err := db.Migrate(dbConn); err != nil {
			return err
		}
		logger.Info("migrations completed successfully")
		return nil
	}

	// Run migrations on startup if enabled
	if cfg.App.Migrations || *seedOnlyFlag {
		if err := db.Migrate(dbConn); err != nil {
			return err
		}
		logger.Info("migrations completed")
	}

	store, closeStore, err := newKVStore(cfg.KV, dbConn, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	provider := identity.NewLocalProvider(dbConn, identity.LocalConfig{
		Secret:     []byte(cfg.Auth.JWTSecret),
		Issuer:     cfg.Auth.Issuer,
		TokenTTL:   cfg.Auth.TokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	routerCfg := policy.NewRouterConfig(store, provider, cfg.App.DefaultCity, logger)

	if *seedOnlyFlag {
		res, err := routerCfg.Seeder.Seed(context.Background())
		if err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		logger.Info(res.Message, zap.Int("existing", res.Count))
		return nil
	}

	// Demo seeding never blocks startup.
	if cfg.App.SeedDemo {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		res, err := routerCfg.Seeder.Seed(ctx)
		cancel()
		if err != nil {
			logger.Warn("demo data not initialized", zap.Error(err))
		} else {
			logger.Info(res.Message)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      server.NewApp(routerCfg, logger, server.Options{AllowedOrigins: cfg.Server.AllowedOrigins}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.Bool("dev", cfg.App.Dev),
			zap.String("kv_backend", cfg.KV.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
		logger.Info("shutdown signal received")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
	logger.Info("server stopped gracefully")
	return nil
}

// newKVStore builds the configured key-value backend. The returned func
// releases its resources.
func newKVStore(cfg config.KVConfig, dbConn *gorm.DB, logger *zap.Logger) (kv.Store, func(), error) {
	switch strings.ToLower(cfg.Backend) {
	case config.KVBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		logger.Info("using redis key-value store",
			zap.String("addr", cfg.RedisAddr), zap.String("namespace", cfg.Namespace))
		return kv.NewRedisStore(client, cfg.Namespace), func() { _ = client.Close() }, nil
	default:
		logger.Info("using sql key-value store")
		return kv.NewSQLStore(dbConn), func() {}, nil
	}
}
