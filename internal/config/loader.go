package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ConfigLoader handles loading configuration from multiple sources
type ConfigLoader struct{}

// NewConfigLoader creates a new config loader
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

// GetDefaultConfig returns a default configuration
func GetDefaultConfig() *ServerConfig {
	askTimeout := 30000
	uploadTimeout := 60000
	listTimeout := 10000
	timeout := 120000
	output := "stderr"
	enableReqLog := true
	enableRespLog := false

	return &ServerConfig{
		Database: DatabaseConfig{
			Host:     stringPtr("localhost"),
			Port:     intPtr(5432),
			Database: stringPtr("pdf_ingest"),
			User:     stringPtr("postgres"),
		},
		RAG: RAGConfig{
			AskTimeoutMillis:    &askTimeout,
			UploadTimeoutMillis: &uploadTimeout,
			ListTimeoutMillis:   &listTimeout,
		},
		Server: ServerSettings{
			Name:    stringPtr("rag-db-mcp-server"),
			Version: stringPtr("1.0.0"),
			Timeout: &timeout,
		},
		Logging: LoggingConfig{
			Level:                 "info",
			Format:                "text",
			Output:                &output,
			EnableRequestLogging:  &enableReqLog,
			EnableResponseLogging: &enableRespLog,
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func (l *ConfigLoader) LoadFromFile(configPath string) (*ServerConfig, error) {
	possiblePaths := []string{}

	if configPath != "" {
		possiblePaths = append(possiblePaths, configPath)
	}

	if envPath := os.Getenv("RAGDB_MCP_CONFIG"); envPath != "" {
		possiblePaths = append(possiblePaths, envPath)
	}

	cwd, _ := os.Getwd()
	possiblePaths = append(possiblePaths,
		filepath.Join(cwd, "ragdb-mcp.json"),
	)

	if home, err := os.UserHomeDir(); err == nil {
		possiblePaths = append(possiblePaths,
			filepath.Join(home, ".ragdb", "mcp-config.json"),
		)
	}

	for _, path := range possiblePaths {
		if data, err := os.ReadFile(path); err == nil {
			var config ServerConfig
			if err := json.Unmarshal(data, &config); err != nil {
				return nil, fmt.Errorf("failed to parse config from %s: %w", path, err)
			}
			return &config, nil
		}
	}

	return nil, nil // No config file found
}

// MergeWithEnv merges configuration with environment variables
func (l *ConfigLoader) MergeWithEnv(config *ServerConfig) *ServerConfig {
	merged := *config

	// Database config from env
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		merged.Database.ConnectionString = &connStr
	}
	if host := os.Getenv("RAGDB_DB_HOST"); host != "" {
		merged.Database.Host = &host
	}
	if portStr := os.Getenv("RAGDB_DB_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			merged.Database.Port = &port
		}
	}
	if db := os.Getenv("RAGDB_DB_NAME"); db != "" {
		merged.Database.Database = &db
	}
	if user := os.Getenv("RAGDB_DB_USER"); user != "" {
		merged.Database.User = &user
	}
	if pass := os.Getenv("RAGDB_DB_PASSWORD"); pass != "" {
		merged.Database.Password = &pass
	}

	// RAG config from env
	if baseURL := os.Getenv("RAG_API_URL"); baseURL != "" {
		merged.RAG.BaseURL = &baseURL
	}
	if apiKey := os.Getenv("RAG_API_KEY"); apiKey != "" {
		merged.RAG.APIKey = &apiKey
	}

	// Logging config from env
	if level := os.Getenv("RAGDB_LOG_LEVEL"); level != "" {
		merged.Logging.Level = level
	}
	if format := os.Getenv("RAGDB_LOG_FORMAT"); format != "" {
		merged.Logging.Format = format
	}
	if output := os.Getenv("RAGDB_LOG_OUTPUT"); output != "" {
		merged.Logging.Output = &output
	}

	return &merged
}

// Helper functions
func stringPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}
