package builtin

import (
	"context"

	"github.com/ragstack/ragdb-mcp/internal/logging"
	"github.com/ragstack/ragdb-mcp/internal/middleware"
)

// ErrorRecovery converts any error escaping the inner handlers into an
// error response, keeping the protocol loop alive. The dispatcher
// already renders its own failures as envelopes; this is the backstop
// for everything else.
type ErrorRecovery struct {
	logger *logging.Logger
}

// NewErrorRecovery creates the error recovery middleware.
func NewErrorRecovery(logger *logging.Logger) *ErrorRecovery {
	return &ErrorRecovery{logger: logger}
}

func (m *ErrorRecovery) Name() string  { return "error-recovery" }
func (m *ErrorRecovery) Order() int    { return 100 }
func (m *ErrorRecovery) Enabled() bool { return true }

func (m *ErrorRecovery) Execute(ctx context.Context, req *middleware.Request, next middleware.Handler) (*middleware.Response, error) {
	resp, err := next(ctx)
	if err != nil {
		m.logger.Error("Unhandled error", err, map[string]interface{}{
			"tool":       req.Tool,
			"request_id": req.Meta["request_id"],
		})
		return &middleware.Response{
			Text:    "Error: " + err.Error(),
			IsError: true,
		}, nil
	}
	return resp, nil
}
