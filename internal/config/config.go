// Package config loads server configuration from a JSON file,
// environment variables, and defaults, in that order of precedence.
package config

import (
	"fmt"
	"os"
)

// ConfigManager manages configuration loading and access
type ConfigManager struct {
	config *ServerConfig
}

// NewConfigManager creates a new config manager
func NewConfigManager() *ConfigManager {
	return &ConfigManager{}
}

// Load loads configuration from file and environment
func (m *ConfigManager) Load(configPath string) (*ServerConfig, error) {
	if m.config != nil {
		return m.config, nil
	}

	loader := NewConfigLoader()

	fileConfig, err := loader.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	baseConfig := fileConfig
	if baseConfig == nil {
		baseConfig = GetDefaultConfig()
	}

	m.config = loader.MergeWithEnv(baseConfig)

	validator := NewConfigValidator()
	valid, errors := validator.Validate(m.config)
	if !valid {
		fmt.Fprintf(os.Stderr, "Configuration validation errors:\n")
		for _, err := range errors {
			fmt.Fprintf(os.Stderr, "  - %s\n", err)
		}
		return nil, fmt.Errorf("invalid configuration")
	}

	return m.config, nil
}

// GetConfig returns the current configuration
func (m *ConfigManager) GetConfig() *ServerConfig {
	if m.config == nil {
		if _, err := m.Load(""); err != nil {
			return GetDefaultConfig()
		}
	}
	return m.config
}

// GetDatabaseConfig returns database configuration
func (m *ConfigManager) GetDatabaseConfig() *DatabaseConfig {
	return &m.GetConfig().Database
}

// GetRAGConfig returns RAG client configuration
func (m *ConfigManager) GetRAGConfig() *RAGConfig {
	return &m.GetConfig().RAG
}

// GetServerSettings returns server settings
func (m *ConfigManager) GetServerSettings() *ServerSettings {
	return &m.GetConfig().Server
}

// GetLoggingConfig returns logging configuration
func (m *ConfigManager) GetLoggingConfig() *LoggingConfig {
	return &m.GetConfig().Logging
}

// ConnString builds the database connection string, preferring an
// explicit connectionString over individual components.
func (c *DatabaseConfig) ConnString() string {
	if c.ConnectionString != nil && *c.ConnectionString != "" {
		return *c.ConnectionString
	}

	password := ""
	if c.Password != nil {
		password = *c.Password
	}

	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		c.GetHost(), c.GetPort(), c.GetUser(), password, c.GetDatabase())

	if mode := c.GetSSLMode(); mode != "" {
		connStr += " sslmode=" + mode
	}

	return connStr
}
