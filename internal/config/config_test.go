package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("explicit missing file should error")
	}

	// 不传路径时回落默认值
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("addr=%q, want :8080", cfg.Server.Addr)
	}
	if cfg.Kafka.Topic != "endorsement-events" {
		t.Fatalf("topic=%q", cfg.Kafka.Topic)
	}
	if cfg.JWT.AccessTTL != 30*time.Minute {
		t.Fatalf("access_ttl=%v", cfg.JWT.AccessTTL)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  addr: ":9090"
redis:
  addr: "redis:6379"
  db: 3
jwt:
  access_ttl: 15m
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("addr=%q, want :9090", cfg.Server.Addr)
	}
	if cfg.Redis.Addr != "redis:6379" || cfg.Redis.DB != 3 {
		t.Fatalf("redis=%+v", cfg.Redis)
	}
	if cfg.JWT.AccessTTL != 15*time.Minute {
		t.Fatalf("access_ttl=%v, want 15m", cfg.JWT.AccessTTL)
	}
	// 未覆盖的键保持默认
	if cfg.Kafka.Topic != "endorsement-events" {
		t.Fatalf("topic=%q", cfg.Kafka.Topic)
	}
}
