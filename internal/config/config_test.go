package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %q, expected 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("default driver = %q, expected sqlite", cfg.Database.Driver)
	}
	if cfg.JWT.ExpireHour != 24 {
		t.Errorf("default JWT expiry = %d, expected 24", cfg.JWT.ExpireHour)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis should be disabled by default")
	}
	if cfg.Storage.UploadDir != "uploads" {
		t.Errorf("default upload dir = %q, expected uploads", cfg.Storage.UploadDir)
	}
	if cfg.Storage.MaxSizeMB != 20 {
		t.Errorf("default upload limit = %d MB, expected 20", cfg.Storage.MaxSizeMB)
	}
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, expected default 8080", cfg.Server.Port)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  host: 127.0.0.1
  port: "9090"
  mode: release
database:
  driver: postgres
  dsn: host=localhost user=qa dbname=checkmate
storage:
  upload_dir: /var/lib/checkmate/files
  max_size_mb: 50
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, expected 9090", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("driver = %q, expected postgres", cfg.Database.Driver)
	}
	if cfg.Storage.UploadDir != "/var/lib/checkmate/files" {
		t.Errorf("upload dir = %q", cfg.Storage.UploadDir)
	}
	if cfg.Storage.MaxSizeMB != 50 {
		t.Errorf("upload limit = %d, expected 50", cfg.Storage.MaxSizeMB)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7000")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("UPLOAD_DIR", "/tmp/uploads")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "7000" {
		t.Errorf("port = %q, expected env override 7000", cfg.Server.Port)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("driver = %q, expected env override mysql", cfg.Database.Driver)
	}
	if cfg.Storage.UploadDir != "/tmp/uploads" {
		t.Errorf("upload dir = %q, expected env override", cfg.Storage.UploadDir)
	}
}

func TestParseRedisURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.parseRedisURL("redis://:secret@redis.internal:6380/2")

	if cfg.Redis.Addr != "redis.internal:6380" {
		t.Errorf("addr = %q", cfg.Redis.Addr)
	}
	if cfg.Redis.Password != "secret" {
		t.Errorf("password = %q", cfg.Redis.Password)
	}
	if cfg.Redis.DB != 2 {
		t.Errorf("db = %d, expected 2", cfg.Redis.DB)
	}
}

func TestParseRedisURL_NoAuth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.parseRedisURL("redis://localhost:6379/0")

	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("addr = %q", cfg.Redis.Addr)
	}
	if cfg.Redis.Password != "" {
		t.Errorf("password should be empty, got %q", cfg.Redis.Password)
	}
}
