package builtin

import (
	"context"
	"time"

	"github.com/ragstack/ragdb-mcp/internal/logging"
	"github.com/ragstack/ragdb-mcp/internal/middleware"
)

// CallLogging logs tool calls and, optionally, their outcomes.
// Arguments are never logged: queries and file paths may be sensitive.
type CallLogging struct {
	logger      *logging.Logger
	logCalls    bool
	logOutcomes bool
}

// NewCallLogging creates the call logging middleware.
func NewCallLogging(logger *logging.Logger, logCalls, logOutcomes bool) *CallLogging {
	return &CallLogging{
		logger:      logger,
		logCalls:    logCalls,
		logOutcomes: logOutcomes,
	}
}

func (m *CallLogging) Name() string  { return "call-logging" }
func (m *CallLogging) Order() int    { return 2 }
func (m *CallLogging) Enabled() bool { return m.logCalls || m.logOutcomes }

func (m *CallLogging) Execute(ctx context.Context, req *middleware.Request, next middleware.Handler) (*middleware.Response, error) {
	start := time.Now()

	if m.logCalls {
		m.logger.Info("Tool call", map[string]interface{}{
			"tool":       req.Tool,
			"request_id": req.Meta["request_id"],
		})
	}

	resp, err := next(ctx)
	if err != nil {
		m.logger.Error("Tool call failed", err, map[string]interface{}{
			"tool":       req.Tool,
			"request_id": req.Meta["request_id"],
			"duration":   time.Since(start).String(),
		})
		return nil, err
	}

	if m.logOutcomes {
		m.logger.Info("Tool call finished", map[string]interface{}{
			"tool":       req.Tool,
			"request_id": req.Meta["request_id"],
			"duration":   time.Since(start).String(),
			"is_error":   resp.IsError,
		})
	}

	return resp, nil
}
