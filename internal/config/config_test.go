package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if got := cfg.Database.GetHost(); got != "localhost" {
		t.Errorf("host = %q", got)
	}
	if got := cfg.Database.GetDatabase(); got != "pdf_ingest" {
		t.Errorf("database = %q", got)
	}
	if got := cfg.Server.GetName(); got != "rag-db-mcp-server" {
		t.Errorf("name = %q", got)
	}
	if got := cfg.RAG.GetAskTimeout().Seconds(); got != 30 {
		t.Errorf("ask timeout = %vs", got)
	}
	if got := cfg.RAG.GetUploadTimeout().Seconds(); got != 60 {
		t.Errorf("upload timeout = %vs", got)
	}
	if got := cfg.RAG.GetListTimeout().Seconds(); got != 10 {
		t.Errorf("list timeout = %vs", got)
	}
}

func TestMergeWithEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env-host/appdb")
	t.Setenv("RAG_API_URL", "https://rag.example.com")
	t.Setenv("RAG_API_KEY", "secret-key")
	t.Setenv("RAGDB_LOG_LEVEL", "debug")

	loader := NewConfigLoader()
	merged := loader.MergeWithEnv(GetDefaultConfig())

	if merged.Database.ConnectionString == nil || *merged.Database.ConnectionString != "postgres://env-host/appdb" {
		t.Errorf("connection string = %v", merged.Database.ConnectionString)
	}
	if merged.RAG.GetBaseURL() != "https://rag.example.com" {
		t.Errorf("base URL = %q", merged.RAG.GetBaseURL())
	}
	if merged.RAG.GetAPIKey() != "secret-key" {
		t.Errorf("api key = %q", merged.RAG.GetAPIKey())
	}
	if merged.Logging.Level != "debug" {
		t.Errorf("log level = %q", merged.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"database": {"host": "db.internal", "port": 5433, "database": "docs"},
		"rag": {"baseUrl": "https://rag.internal", "apiKey": "k", "askTimeoutMillis": 5000},
		"server": {"name": "custom-server"},
		"logging": {"level": "warn", "format": "json"}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewConfigLoader()
	cfg, err := loader.LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadFromFile() returned nil config")
	}

	if cfg.Database.GetHost() != "db.internal" || cfg.Database.GetPort() != 5433 {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Server.GetName() != "custom-server" {
		t.Errorf("name = %q", cfg.Server.GetName())
	}
	if cfg.RAG.GetAskTimeout().Milliseconds() != 5000 {
		t.Errorf("ask timeout = %v", cfg.RAG.GetAskTimeout())
	}
}

func TestLoadFromFileMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewConfigLoader()
	if _, err := loader.LoadFromFile(path); err == nil {
		t.Error("malformed config file should fail, not fall through")
	}
}

func TestConnString(t *testing.T) {
	cfg := &DatabaseConfig{
		Host:     stringPtr("db1"),
		Port:     intPtr(5433),
		Database: stringPtr("docs"),
		User:     stringPtr("app"),
		Password: stringPtr("pw"),
		SSLMode:  stringPtr("require"),
	}
	want := "host=db1 port=5433 user=app password=pw dbname=docs sslmode=require"
	if got := cfg.ConnString(); got != want {
		t.Errorf("ConnString() = %q, want %q", got, want)
	}
}

func TestConnStringPrefersExplicit(t *testing.T) {
	cfg := &DatabaseConfig{
		ConnectionString: stringPtr("postgres://u:p@h/db"),
		Host:             stringPtr("ignored"),
	}
	if got := cfg.ConnString(); got != "postgres://u:p@h/db" {
		t.Errorf("ConnString() = %q", got)
	}
}

func TestValidator(t *testing.T) {
	validator := NewConfigValidator()

	valid, errs := validator.Validate(GetDefaultConfig())
	if !valid {
		t.Errorf("default config should validate, got %v", errs)
	}

	bad := GetDefaultConfig()
	bad.Database.Port = intPtr(99999)
	bad.Logging.Level = "loud"
	valid, errs = validator.Validate(bad)
	if valid {
		t.Error("invalid config should fail validation")
	}
	if len(errs) < 2 {
		t.Errorf("expected errors for port and log level, got %v", errs)
	}
}
