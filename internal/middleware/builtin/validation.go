package builtin

import (
	"context"

	"github.com/ragstack/ragdb-mcp/internal/middleware"
)

// Validation rejects calls that are malformed at the protocol level,
// before any tool-specific checks run.
type Validation struct{}

// NewValidation creates the validation middleware.
func NewValidation() *Validation {
	return &Validation{}
}

func (m *Validation) Name() string  { return "validation" }
func (m *Validation) Order() int    { return 1 }
func (m *Validation) Enabled() bool { return true }

func (m *Validation) Execute(ctx context.Context, req *middleware.Request, next middleware.Handler) (*middleware.Response, error) {
	if req.Tool == "" {
		return &middleware.Response{
			Text:    "Missing tool name in request",
			IsError: true,
		}, nil
	}
	return next(ctx)
}
