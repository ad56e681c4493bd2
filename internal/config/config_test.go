package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
corpus:
  resumes_dir: "./resumes"
storage:
  database_path: "./profiles.db"
index:
  backend: "redis"
  redis_addr: "redis:6379"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Index.Backend != "redis" || cfg.Index.RedisAddr != "redis:6379" {
		t.Errorf("unexpected index config: %+v", cfg.Index)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
corpus:
  resumes_dir: "./data/resumes"
  originals_dir: "./data/originals"
storage:
  database_path: "./data/profiles.db"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "data/resumes"); cfg.Corpus.ResumesDir != want {
		t.Errorf("ResumesDir = %q, want %q", cfg.Corpus.ResumesDir, want)
	}
	if want := filepath.Join(dir, "data/originals"); cfg.Corpus.OriginalsDir != want {
		t.Errorf("OriginalsDir = %q, want %q", cfg.Corpus.OriginalsDir, want)
	}
	if want := filepath.Join(dir, "data/profiles.db"); cfg.Storage.DatabasePath != want {
		t.Errorf("DatabasePath = %q, want %q", cfg.Storage.DatabasePath, want)
	}
}

func TestLoad_missingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_invalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server: [broken"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	ApplyDefaults(&cfg)

	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("server defaults: %+v", cfg.Server)
	}
	if cfg.Embedding.Provider != "mock" {
		t.Errorf("Provider = %q", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Dimensions != 384 {
		t.Errorf("Dimensions = %d", cfg.Embedding.Dimensions)
	}
	if cfg.Embedding.CacheSize != 10000 {
		t.Errorf("CacheSize = %d", cfg.Embedding.CacheSize)
	}
	if cfg.Index.Backend != "memory" {
		t.Errorf("Backend = %q", cfg.Index.Backend)
	}
	if cfg.Index.IndexName != "talentsift" {
		t.Errorf("IndexName = %q", cfg.Index.IndexName)
	}
	if len(cfg.Watch.Extensions) == 0 {
		t.Error("watch extensions default missing")
	}
	if cfg.Watch.DebounceMS != 500 {
		t.Errorf("DebounceMS = %d", cfg.Watch.DebounceMS)
	}
}

func TestApplyDefaults_keepsExplicitValues(t *testing.T) {
	cfg := Config{}
	cfg.Server.Port = 9999
	cfg.Embedding.Provider = "openai"
	ApplyDefaults(&cfg)

	if cfg.Server.Port != 9999 {
		t.Errorf("Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Embedding.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", cfg.Embedding.Provider)
	}
}
