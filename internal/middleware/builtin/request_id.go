// Package builtin holds the middleware shipped with the server.
package builtin

import (
	"context"

	"github.com/google/uuid"

	"github.com/ragstack/ragdb-mcp/internal/middleware"
)

// RequestID tags each tool call with a correlation id so log lines
// from one call can be grouped.
type RequestID struct{}

// NewRequestID creates the request id middleware.
func NewRequestID() *RequestID {
	return &RequestID{}
}

func (m *RequestID) Name() string  { return "request-id" }
func (m *RequestID) Order() int    { return 0 }
func (m *RequestID) Enabled() bool { return true }

func (m *RequestID) Execute(ctx context.Context, req *middleware.Request, next middleware.Handler) (*middleware.Response, error) {
	if req.Meta == nil {
		req.Meta = make(map[string]interface{})
	}
	if _, exists := req.Meta["request_id"]; !exists {
		req.Meta["request_id"] = uuid.NewString()
	}
	return next(ctx)
}
