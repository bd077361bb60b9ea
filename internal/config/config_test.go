package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Matching.FreeSuperLikesPerDay != 1 {
		t.Fatalf("unexpected free super likes: %d", cfg.Matching.FreeSuperLikesPerDay)
	}
	if cfg.Matching.MatchTTL != 24*time.Hour {
		t.Fatalf("unexpected match ttl: %v", cfg.Matching.MatchTTL)
	}
	if cfg.Rate.ActionsPerMinute != 60 || cfg.Rate.ActionsPer10Sec != 15 {
		t.Fatalf("unexpected rate limits: %+v", cfg.Rate)
	}
	if cfg.Discovery.DefaultRadiusKM != 100 || cfg.Discovery.MaxRadiusKM != 500 {
		t.Fatalf("unexpected discovery radii: %+v", cfg.Discovery)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
http:
  addr: ":9999"
matching:
  plus_super_likes_per_day: 7
  match_ttl: 48h
rate:
  actions_per_minute: 30
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":9999" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Matching.PlusSuperLikesPerDay != 7 {
		t.Fatalf("unexpected plus super likes: %d", cfg.Matching.PlusSuperLikesPerDay)
	}
	if cfg.Matching.MatchTTL != 48*time.Hour {
		t.Fatalf("unexpected match ttl: %v", cfg.Matching.MatchTTL)
	}
	if cfg.Rate.ActionsPerMinute != 30 {
		t.Fatalf("unexpected rate limit: %d", cfg.Rate.ActionsPerMinute)
	}
	if cfg.Matching.FreeSuperLikesPerDay != 1 {
		t.Fatalf("untouched default changed: %d", cfg.Matching.FreeSuperLikesPerDay)
	}
}

func TestEnvOverridesWinOverYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("http:\n  addr: \":9999\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("HTTP_ADDR", ":7777")
	t.Setenv("POSTGRES_DSN", "postgres://env:env@db:5432/env")
	t.Setenv("AUTH_GATEWAY_SECRET", "env-secret")
	t.Setenv("MATCHING_REWIND_WINDOW", "12h")
	t.Setenv("DISCOVERY_FETCH_LIMIT", "250")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":7777" {
		t.Fatalf("env override lost: %s", cfg.HTTP.Addr)
	}
	if cfg.Postgres.DSN != "postgres://env:env@db:5432/env" {
		t.Fatalf("unexpected dsn: %s", cfg.Postgres.DSN)
	}
	if cfg.Auth.GatewaySecret != "env-secret" {
		t.Fatalf("unexpected gateway secret: %s", cfg.Auth.GatewaySecret)
	}
	if cfg.Matching.RewindWindow != 12*time.Hour {
		t.Fatalf("unexpected rewind window: %v", cfg.Matching.RewindWindow)
	}
	if cfg.Discovery.FetchLimit != 250 {
		t.Fatalf("unexpected fetch limit: %d", cfg.Discovery.FetchLimit)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("MATCHING_MATCH_TTL", "not-a-duration")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected an error for a malformed duration")
	}
}
