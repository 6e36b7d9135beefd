package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.App.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.App.Port)
	}
	if cfg.App.LogLevel != "info" {
		t.Errorf("log level = %q, want %q", cfg.App.LogLevel, "info")
	}
	if cfg.DB.Path != "hearth.db" {
		t.Errorf("db path = %q, want %q", cfg.DB.Path, "hearth.db")
	}
	if cfg.Session.TTL.Hours() != 720 {
		t.Errorf("session ttl = %v, want 720h", cfg.Session.TTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HEARTH_PORT", "9090")
	t.Setenv("HEARTH_DB_PATH", "/tmp/test.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.App.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.App.Port)
	}
	if cfg.DB.Path != "/tmp/test.db" {
		t.Errorf("db path = %q, want %q", cfg.DB.Path, "/tmp/test.db")
	}
}
