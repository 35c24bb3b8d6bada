package builtin

import (
	"context"
	"fmt"
	"time"

	"github.com/ragstack/ragdb-mcp/internal/logging"
	"github.com/ragstack/ragdb-mcp/internal/middleware"
)

// Timeout bounds how long one tool call may run. A zero duration
// disables the middleware entirely; per-operation HTTP deadlines in
// the service clients remain in force either way.
type Timeout struct {
	timeout time.Duration
	logger  *logging.Logger
}

// NewTimeout creates the timeout middleware.
func NewTimeout(timeout time.Duration, logger *logging.Logger) *Timeout {
	return &Timeout{timeout: timeout, logger: logger}
}

func (m *Timeout) Name() string  { return "timeout" }
func (m *Timeout) Order() int    { return 3 }
func (m *Timeout) Enabled() bool { return m.timeout > 0 }

func (m *Timeout) Execute(ctx context.Context, req *middleware.Request, next middleware.Handler) (*middleware.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	type outcome struct {
		resp *middleware.Response
		err  error
	}
	done := make(chan outcome, 1)

	go func() {
		resp, err := next(ctx)
		done <- outcome{resp: resp, err: err}
	}()

	select {
	case out := <-done:
		return out.resp, out.err
	case <-ctx.Done():
		m.logger.Warn("Tool call timed out", map[string]interface{}{
			"tool":       req.Tool,
			"request_id": req.Meta["request_id"],
			"timeout":    m.timeout.String(),
		})
		return &middleware.Response{
			Text:    fmt.Sprintf("Request timeout after %v", m.timeout),
			IsError: true,
		}, nil
	}
}
