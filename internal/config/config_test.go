package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LISTEN_ADDR", "DATABASE_DRIVER", "DATABASE_URL", "DATABASE_PATH", "SESSION_SECRET", "JWT_SECRET", "TOKEN_TTL_HOURS", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected default listen addr :8080, got %q", cfg.ListenAddr)
	}
	if cfg.DatabaseDriver != "sqlite" || cfg.DatabaseURL != "agency.db" {
		t.Fatalf("unexpected database defaults: %q %q", cfg.DatabaseDriver, cfg.DatabaseURL)
	}
	if cfg.JWTSecret != cfg.SessionSecret {
		t.Fatalf("expected jwt secret to fall back to session secret")
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h token ttl, got %s", cfg.TokenTTL)
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Fatalf("expected no cors origins, got %v", cfg.CORSOrigins)
	}
	if got := cfg.DefaultSecrets(); len(got) != 2 || got[0] != "SESSION_SECRET" || got[1] != "JWT_SECRET" {
		t.Fatalf("expected both secrets reported as defaults, got %v", got)
	}
}

func TestDefaultSecretsClearedByOverrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "session-from-env")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	if got := cfg.DefaultSecrets(); len(got) != 0 {
		t.Fatalf("jwt secret follows the session secret, expected no defaults, got %v", got)
	}

	t.Setenv("SESSION_SECRET", "")
	t.Setenv("JWT_SECRET", "jwt-from-env")
	cfg = Load()
	if got := cfg.DefaultSecrets(); len(got) != 1 || got[0] != "SESSION_SECRET" {
		t.Fatalf("expected only the session secret reported, got %v", got)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/agency")
	t.Setenv("TOKEN_TTL_HOURS", "2")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()
	if cfg.ListenAddr != ":9000" {
		t.Fatalf("expected listen addr to follow PORT, got %q", cfg.ListenAddr)
	}
	if cfg.DatabaseDriver != "postgres" {
		t.Fatalf("expected driver to be lower-cased, got %q", cfg.DatabaseDriver)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("expected 2h token ttl, got %s", cfg.TokenTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
}
