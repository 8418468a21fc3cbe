// Package config provides application configuration loaded from environment variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Key-value backends.
const (
	KVBackendSQL   = "sql"
	KVBackendRedis = "redis"
)

// devJWTSecret is only accepted when DEV is on.
const devJWTSecret = "dev-artisans-jwt-secret"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	KV       KVConfig
	Auth     AuthConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	ReadTimeout    time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout   time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout    time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// DatabaseConfig holds SQL connection settings.
type DatabaseConfig struct {
	Driver     string `env:"DB_DRIVER" envDefault:"sqlite"`
	Host       string `env:"DB_HOST" envDefault:"localhost"`
	Port       int    `env:"DB_PORT" envDefault:"5432"`
	User       string `env:"DB_USER" envDefault:"artisans"`
	Password   string `env:"DB_PASSWORD" envDefault:"artisans123"`
	DBName     string `env:"DB_NAME" envDefault:"artisans"`
	SSLMode    string `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"artisans.db"`
}

// KVConfig selects and configures the key-value backend.
type KVConfig struct {
	Backend       string `env:"KV_BACKEND" envDefault:"sql"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	Namespace     string `env:"KV_NAMESPACE" envDefault:"artisans"`
}

// AuthConfig configures the local identity provider.
type AuthConfig struct {
	JWTSecret  string        `env:"AUTH_JWT_SECRET"`
	Issuer     string        `env:"AUTH_JWT_ISSUER" envDefault:"go-artisans"`
	TokenTTL   time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"1h"`
	BcryptCost int           `env:"AUTH_BCRYPT_COST" envDefault:"10"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev         bool   `env:"DEV" envDefault:"true"`
	Migrations  bool   `env:"MIGRATIONS" envDefault:"true"`
	SeedDemo    bool   `env:"SEED_DEMO" envDefault:"true"`
	DefaultCity string `env:"DEFAULT_CITY" envDefault:"Lubumbashi"`
}

// DSN returns the PostgreSQL connection string in key=value format.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// SQLiteDSN returns the sqlite file DSN with foreign keys enabled.
func (d DatabaseConfig) SQLiteDSN() string {
	return "file:" + filepath.ToSlash(d.SQLitePath) + "?_foreign_keys=on"
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Auth.JWTSecret == "" && cfg.App.Dev {
		cfg.Auth.JWTSecret = devJWTSecret
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Database.Driver) {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not supported", c.Database.Driver))
	}
	switch strings.ToLower(c.KV.Backend) {
	case KVBackendSQL, KVBackendRedis:
	default:
		errs = append(errs, fmt.Errorf("KV_BACKEND %q is not supported", c.KV.Backend))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET is required when DEV is off"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("AUTH_TOKEN_TTL must be positive"))
	}
	return errors.Join(errs...)
}
