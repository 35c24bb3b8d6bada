// Package database owns the PostgreSQL connection and the three read
// operations exposed to the tool layer.
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ragstack/ragdb-mcp/internal/logging"
	"github.com/ragstack/ragdb-mcp/internal/validate"
)

// Service manages a single PostgreSQL connection. The handle is
// reconnected lazily before each operation when absent or closed.
// Concurrent calls sharing the handle must be serialized upstream:
// the protocol loop processes one call at a time, and this service
// adds no locking of its own.
type Service struct {
	connString string
	conn       *pgx.Conn
	logger     *logging.Logger
}

// New creates a database service for the given connection string.
func New(connString string, logger *logging.Logger) *Service {
	return &Service{
		connString: connString,
		logger:     logger,
	}
}

// Connect establishes the connection eagerly. Operations reconnect on
// demand, so a startup failure here is not fatal.
func (s *Service) Connect(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, s.connString)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	s.conn = conn
	s.logger.Info("Database connection established", nil)
	return nil
}

func (s *Service) ensureConnected(ctx context.Context) error {
	if s.conn != nil && !s.conn.IsClosed() {
		return nil
	}
	return s.Connect(ctx)
}

// ExecuteSelect runs a caller-supplied SELECT and returns the rows.
// The query is re-checked against the SQL denylist here so that no
// path into the store can skip it.
func (s *Service) ExecuteSelect(ctx context.Context, query string, args ...interface{}) (*RowSet, error) {
	if err := validate.SQLQuery(query); err != nil {
		return nil, err
	}

	rs, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Query executed", map[string]interface{}{
		"query": truncate(query, 100),
		"rows":  rs.Len(),
	})
	return rs, nil
}

// GetDocuments fetches documents, optionally filtered by user, with a
// bounded limit. Parameters are bound positionally.
func (s *Service) GetDocuments(ctx context.Context, limit int, userID string) (*RowSet, error) {
	query, args := documentsQuery(limit, userID)
	return s.query(ctx, query, args...)
}

// GetUser fetches a user row by id. An empty row set means the user
// does not exist; that is not an error.
func (s *Service) GetUser(ctx context.Context, userID string) (*RowSet, error) {
	return s.query(ctx, "SELECT * FROM users WHERE id = $1", userID)
}

func (s *Service) query(ctx context.Context, query string, args ...interface{}) (*RowSet, error) {
	if err := s.ensureConnected(ctx); err != nil {
		return nil, err
	}

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	return collectRowSet(rows)
}

// Close closes the connection.
func (s *Service) Close(ctx context.Context) {
	if s.conn != nil {
		if err := s.conn.Close(ctx); err != nil {
			s.logger.Error("Failed to close database connection", err, nil)
			return
		}
		s.logger.Info("Database connection closed", nil)
	}
}

// documentsQuery builds the fixed query shape for GetDocuments.
func documentsQuery(limit int, userID string) (string, []interface{}) {
	if userID != "" {
		return "SELECT * FROM documents WHERE user_id = $1 LIMIT $2", []interface{}{userID, limit}
	}
	return "SELECT * FROM documents LIMIT $1", []interface{}{limit}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
