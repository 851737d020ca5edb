package config

import "testing"

func TestLoad_RequiresDSN(t *testing.T) {
	t.Setenv("DATABASE_DSN", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without DATABASE_DSN")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://localhost/draft")
	t.Setenv("ADDR", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("addr default: got %q", cfg.Addr)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("redis default: got %q", cfg.RedisAddr)
	}
	if cfg.Production() {
		t.Fatalf("development by default")
	}
}
