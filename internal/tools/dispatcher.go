// Package tools defines the tool registry and the dispatcher that
// routes tools/call requests to the database and retrieval services.
package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/ragstack/ragdb-mcp/internal/database"
	"github.com/ragstack/ragdb-mcp/internal/external"
	"github.com/ragstack/ragdb-mcp/internal/format"
	"github.com/ragstack/ragdb-mcp/internal/logging"
	"github.com/ragstack/ragdb-mcp/internal/rag"
	"github.com/ragstack/ragdb-mcp/internal/validate"
	"github.com/ragstack/ragdb-mcp/pkg/mcp"
)

// Store is the database surface the tools need.
type Store interface {
	ExecuteSelect(ctx context.Context, query string, args ...interface{}) (*database.RowSet, error)
	GetDocuments(ctx context.Context, limit int, userID string) (*database.RowSet, error)
	GetUser(ctx context.Context, userID string) (*database.RowSet, error)
}

// RAG is the retrieval service surface the tools need.
type RAG interface {
	Ask(ctx context.Context, question, documentID string) (*rag.Answer, error)
	Upload(ctx context.Context, filePath string, meta rag.Metadata) (*rag.UploadResult, error)
	List(ctx context.Context) ([]rag.Document, error)
	GetDocument(ctx context.Context, documentID string) (*rag.Document, error)
}

// HTTPCaller performs ad-hoc external API requests.
type HTTPCaller interface {
	Call(ctx context.Context, req external.Request) (interface{}, error)
}

// Dispatcher routes tool calls to services and renders every outcome,
// success or failure, as text. A failed call never propagates a Go
// error to the protocol layer.
type Dispatcher struct {
	store    Store
	rag      RAG
	http     HTTPCaller
	logger   *logging.Logger
	registry *Registry
}

// NewDispatcher builds a dispatcher with all tools registered.
func NewDispatcher(store Store, ragClient RAG, httpCaller HTTPCaller, logger *logging.Logger) *Dispatcher {
	d := &Dispatcher{
		store:    store,
		rag:      ragClient,
		http:     httpCaller,
		logger:   logger,
		registry: NewRegistry(),
	}
	d.registerDatabaseTools()
	d.registerRAGTools()
	d.registerExternalTools()
	return d
}

// List returns the definitions of all registered tools.
func (d *Dispatcher) List() []mcp.ToolDefinition {
	return d.registry.List()
}

// Dispatch executes the named tool. The returned bool reports whether
// the text is an error envelope.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]interface{}) (string, bool) {
	handler, ok := d.registry.Get(name)
	if !ok {
		d.logger.Warn("Unknown tool requested", map[string]interface{}{"tool": name})
		return format.Error(name, string(KindUnknownTool), fmt.Sprintf("unknown tool: %s", name)), true
	}

	if args == nil {
		args = map[string]interface{}{}
	}

	text, err := handler(ctx, args)
	if err != nil {
		kind, message := classify(err)
		d.logger.Error("Tool call failed", err, map[string]interface{}{
			"tool": name,
			"kind": string(kind),
		})
		return format.Error(name, string(kind), message), true
	}

	d.logger.Info("Tool call completed", map[string]interface{}{"tool": name})
	return text, false
}

// classify maps a handler error to its envelope kind. Validation
// failures keep their reason text; anything unclassified is a service
// failure.
func classify(err error) (ErrorKind, string) {
	var toolErr *Error
	if errors.As(err, &toolErr) {
		return toolErr.Kind, toolErr.Message
	}

	var validationErr *validate.Error
	if errors.As(err, &validationErr) {
		return KindInvalidInput, validationErr.Reason
	}

	return KindServiceError, err.Error()
}
