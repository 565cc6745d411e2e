package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("default port: got %q", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("default env: got %q", cfg.Env)
	}
	if !cfg.IsDev() {
		t.Error("default env should be development")
	}
}

func TestLoadProductionGuards(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	// Default DB password is rejected.
	if _, err := Load(); err == nil {
		t.Error("production with default password should fail")
	}

	t.Setenv("POSTGRES_PASSWORD", "real-secret")
	if _, err := Load(); err == nil {
		t.Error("production without admin token should fail")
	}

	t.Setenv("ADMIN_API_TOKEN", "tok")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IsDev() {
		t.Error("production should not report dev mode")
	}
}

func TestDSNAndAddr(t *testing.T) {
	t.Setenv("POSTGRES_USER", "u")
	t.Setenv("POSTGRES_PASSWORD", "p")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("POSTGRES_DB", "blog")
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := cfg.DSN(), "postgres://u:p@db:5433/blog?sslmode=disable"; got != want {
		t.Errorf("DSN: got %q, want %q", got, want)
	}
	if got, want := cfg.Addr(), "127.0.0.1:9000"; got != want {
		t.Errorf("Addr: got %q, want %q", got, want)
	}
}

func TestValkeyAddrOptional(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ValkeyAddr() != "" {
		t.Errorf("unset VALKEY_HOST should disable cache, got %q", cfg.ValkeyAddr())
	}

	t.Setenv("VALKEY_HOST", "cache")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := cfg.ValkeyAddr(), "cache:6379"; got != want {
		t.Errorf("ValkeyAddr: got %q, want %q", got, want)
	}
}
