package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DEV", "true")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("ReadTimeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Database.Driver != DriverSQLite || cfg.KV.Backend != KVBackendSQL {
		t.Errorf("unexpected driver/backend: %q %q", cfg.Database.Driver, cfg.KV.Backend)
	}
	if cfg.Auth.JWTSecret == "" {
		t.Errorf("dev mode should fall back to a dev secret")
	}
	if cfg.App.DefaultCity != "Lubumbashi" {
		t.Errorf("DefaultCity = %q", cfg.App.DefaultCity)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("DEV", "false")
	t.Setenv("AUTH_JWT_SECRET", "")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "AUTH_JWT_SECRET") {
		t.Fatalf("expected missing secret error, got %v", err)
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("DEV", "true")
	t.Setenv("KV_BACKEND", "etcd")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "KV_BACKEND") {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	if got := d.DSN(); got != "host=db port=5433 user=u password=p dbname=n sslmode=disable" {
		t.Errorf("DSN() = %q", got)
	}
}
