package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_MAX_CONNS", "TIMEZONE", "RABBITMQ_URL", "REPORT_CACHE_TTL", "RUN_MIGRATIONS", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "8081" {
		t.Errorf("port: got %s, want 8081", cfg.Port)
	}
	if cfg.DBMaxConns != 5 {
		t.Errorf("max conns: got %d, want 5", cfg.DBMaxConns)
	}
	if cfg.TimeZone != "UTC" {
		t.Errorf("tz: got %s, want UTC", cfg.TimeZone)
	}
	if cfg.RabbitMQ.URL != "" {
		t.Errorf("rabbitmq should be disabled by default, got %s", cfg.RabbitMQ.URL)
	}
	if cfg.ReportCacheTTL != 5*time.Minute {
		t.Errorf("cache ttl: got %v", cfg.ReportCacheTTL)
	}
	if cfg.RunMigrations {
		t.Error("migrations should be off by default")
	}
	if len(cfg.CORSAllowedOrigins) != 1 {
		t.Errorf("cors origins: got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "12")
	t.Setenv("TIMEZONE", "Asia/Jakarta")
	t.Setenv("REPORT_CACHE_TTL", "30s")
	t.Setenv("RUN_MIGRATIONS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg := Load()
	if cfg.DBMaxConns != 12 {
		t.Errorf("max conns: got %d", cfg.DBMaxConns)
	}
	if cfg.TimeZone != "Asia/Jakarta" {
		t.Errorf("tz: got %s", cfg.TimeZone)
	}
	if cfg.ReportCacheTTL != 30*time.Second {
		t.Errorf("cache ttl: got %v", cfg.ReportCacheTTL)
	}
	if !cfg.RunMigrations {
		t.Error("expected migrations on")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("cors origins: got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Errorf("rps: got %v", cfg.RateLimitRPS)
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "lots")
	t.Setenv("REPORT_CACHE_TTL", "soon")

	cfg := Load()
	if cfg.DBMaxConns != 5 {
		t.Errorf("max conns: got %d, want 5", cfg.DBMaxConns)
	}
	if cfg.ReportCacheTTL != 5*time.Minute {
		t.Errorf("cache ttl: got %v", cfg.ReportCacheTTL)
	}
}
