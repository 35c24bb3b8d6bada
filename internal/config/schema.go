package config

import "time"

// ServerConfig is the root configuration structure
type ServerConfig struct {
	Database DatabaseConfig `json:"database"`
	RAG      RAGConfig      `json:"rag"`
	Server   ServerSettings `json:"server"`
	Logging  LoggingConfig  `json:"logging"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	ConnectionString *string `json:"connectionString,omitempty"`
	Host             *string `json:"host,omitempty"`
	Port             *int    `json:"port,omitempty"`
	Database         *string `json:"database,omitempty"`
	User             *string `json:"user,omitempty"`
	Password         *string `json:"password,omitempty"`
	SSLMode          *string `json:"sslMode,omitempty"`
}

// RAGConfig holds RAG service client configuration
type RAGConfig struct {
	BaseURL             *string `json:"baseUrl,omitempty"`
	APIKey              *string `json:"apiKey,omitempty"`
	AskTimeoutMillis    *int    `json:"askTimeoutMillis,omitempty"`
	UploadTimeoutMillis *int    `json:"uploadTimeoutMillis,omitempty"`
	ListTimeoutMillis   *int    `json:"listTimeoutMillis,omitempty"`
}

// ServerSettings holds server configuration
type ServerSettings struct {
	Name    *string `json:"name,omitempty"`
	Version *string `json:"version,omitempty"`
	Timeout *int    `json:"timeout,omitempty"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level                 string  `json:"level"`
	Format                string  `json:"format"`
	Output                *string `json:"output,omitempty"`
	EnableRequestLogging  *bool   `json:"enableRequestLogging,omitempty"`
	EnableResponseLogging *bool   `json:"enableResponseLogging,omitempty"`
}

// Helper methods for getting values with defaults

func (c *DatabaseConfig) GetHost() string {
	if c.Host != nil {
		return *c.Host
	}
	return "localhost"
}

func (c *DatabaseConfig) GetPort() int {
	if c.Port != nil {
		return *c.Port
	}
	return 5432
}

func (c *DatabaseConfig) GetDatabase() string {
	if c.Database != nil {
		return *c.Database
	}
	return "postgres"
}

func (c *DatabaseConfig) GetUser() string {
	if c.User != nil {
		return *c.User
	}
	return "postgres"
}

func (c *DatabaseConfig) GetSSLMode() string {
	if c.SSLMode != nil {
		return *c.SSLMode
	}
	return ""
}

func (c *RAGConfig) GetBaseURL() string {
	if c.BaseURL != nil {
		return *c.BaseURL
	}
	return ""
}

func (c *RAGConfig) GetAPIKey() string {
	if c.APIKey != nil {
		return *c.APIKey
	}
	return ""
}

func (c *RAGConfig) GetAskTimeout() time.Duration {
	if c.AskTimeoutMillis != nil {
		return time.Duration(*c.AskTimeoutMillis) * time.Millisecond
	}
	return 30 * time.Second
}

func (c *RAGConfig) GetUploadTimeout() time.Duration {
	if c.UploadTimeoutMillis != nil {
		return time.Duration(*c.UploadTimeoutMillis) * time.Millisecond
	}
	return 60 * time.Second
}

func (c *RAGConfig) GetListTimeout() time.Duration {
	if c.ListTimeoutMillis != nil {
		return time.Duration(*c.ListTimeoutMillis) * time.Millisecond
	}
	return 10 * time.Second
}

func (s *ServerSettings) GetName() string {
	if s.Name != nil {
		return *s.Name
	}
	return "ragdb-mcp-server"
}

func (s *ServerSettings) GetVersion() string {
	if s.Version != nil {
		return *s.Version
	}
	return "1.0.0"
}

// GetTimeout returns the per-call timeout; zero disables the timeout
// middleware.
func (s *ServerSettings) GetTimeout() time.Duration {
	if s.Timeout != nil {
		return time.Duration(*s.Timeout) * time.Millisecond
	}
	return 0
}
