package builtin

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ragstack/ragdb-mcp/internal/config"
	"github.com/ragstack/ragdb-mcp/internal/logging"
	"github.com/ragstack/ragdb-mcp/internal/middleware"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(&config.LoggingConfig{Level: "error", Format: "json"})
}

func passThrough(resp *middleware.Response, err error) middleware.Handler {
	return func(ctx context.Context) (*middleware.Response, error) {
		return resp, err
	}
}

func TestRequestIDAssignsOnce(t *testing.T) {
	mw := NewRequestID()
	req := &middleware.Request{Tool: "x"}

	if _, err := mw.Execute(context.Background(), req, passThrough(&middleware.Response{}, nil)); err != nil {
		t.Fatal(err)
	}
	first, ok := req.Meta["request_id"].(string)
	if !ok || first == "" {
		t.Fatalf("request_id = %v", req.Meta["request_id"])
	}

	if _, err := mw.Execute(context.Background(), req, passThrough(&middleware.Response{}, nil)); err != nil {
		t.Fatal(err)
	}
	if req.Meta["request_id"] != first {
		t.Error("existing request_id was overwritten")
	}
}

func TestValidationRejectsEmptyTool(t *testing.T) {
	mw := NewValidation()

	resp, err := mw.Execute(context.Background(), &middleware.Request{}, passThrough(&middleware.Response{Text: "ran"}, nil))
	if err != nil {
		t.Fatal(err)
	}
	if !resp.IsError || resp.Text == "ran" {
		t.Errorf("empty tool name passed validation: %+v", resp)
	}
}

func TestTimeoutDisabledAtZero(t *testing.T) {
	if NewTimeout(0, testLogger()).Enabled() {
		t.Error("zero timeout should disable the middleware")
	}
	if !NewTimeout(time.Second, testLogger()).Enabled() {
		t.Error("positive timeout should enable the middleware")
	}
}

func TestTimeoutExpires(t *testing.T) {
	mw := NewTimeout(10*time.Millisecond, testLogger())

	resp, err := mw.Execute(context.Background(), &middleware.Request{Tool: "slow", Meta: map[string]interface{}{}},
		func(ctx context.Context) (*middleware.Response, error) {
			<-ctx.Done()
			time.Sleep(50 * time.Millisecond)
			return &middleware.Response{Text: "late"}, nil
		})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.IsError || !strings.Contains(resp.Text, "timeout") {
		t.Errorf("resp = %+v", resp)
	}
}

func TestErrorRecoveryConvertsError(t *testing.T) {
	mw := NewErrorRecovery(testLogger())

	resp, err := mw.Execute(context.Background(), &middleware.Request{Tool: "x", Meta: map[string]interface{}{}},
		passThrough(nil, errors.New("boom")))
	if err != nil {
		t.Fatalf("error should have been absorbed, got %v", err)
	}
	if !resp.IsError || resp.Text != "Error: boom" {
		t.Errorf("resp = %+v", resp)
	}
}
