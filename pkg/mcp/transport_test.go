package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func frame(body string) string {
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(body), body)
}

func TestTransportReadMessage(t *testing.T) {
	in := strings.NewReader(frame(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	tr := NewTransport(in, &bytes.Buffer{}, &bytes.Buffer{})

	req, err := tr.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error: %v", err)
	}
	if req.Method != "tools/list" {
		t.Errorf("method = %q", req.Method)
	}
}

func TestTransportReadIgnoresExtraHeaders(t *testing.T) {
	body := `{"jsonrpc":"2.0","id":1,"method":"ping"}`
	in := strings.NewReader(fmt.Sprintf(
		"Content-Length: %d\r\nContent-Type: application/json\r\n\r\n%s", len(body), body))
	tr := NewTransport(in, &bytes.Buffer{}, &bytes.Buffer{})

	req, err := tr.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error: %v", err)
	}
	if req.Method != "ping" {
		t.Errorf("method = %q", req.Method)
	}
}

func TestTransportWriteMessage(t *testing.T) {
	var out bytes.Buffer
	tr := NewTransport(strings.NewReader(""), &out, &bytes.Buffer{})

	if err := tr.WriteMessage(CreateResponse(json.RawMessage("1"), "ok")); err != nil {
		t.Fatalf("WriteMessage() error: %v", err)
	}

	written := out.String()
	parts := strings.SplitN(written, "\r\n\r\n", 2)
	if len(parts) != 2 {
		t.Fatalf("no header separator in %q", written)
	}

	var length int
	if _, err := fmt.Sscanf(parts[0], "Content-Length: %d", &length); err != nil {
		t.Fatalf("bad header %q", parts[0])
	}
	if length != len(parts[1]) {
		t.Errorf("Content-Length = %d, body is %d bytes", length, len(parts[1]))
	}

	var resp map[string]interface{}
	if err := json.Unmarshal([]byte(parts[1]), &resp); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if resp["result"] != "ok" {
		t.Errorf("result = %v", resp["result"])
	}
}

func readFramedResponses(t *testing.T, raw string) []map[string]interface{} {
	t.Helper()
	var responses []map[string]interface{}
	rest := raw
	for rest != "" {
		parts := strings.SplitN(rest, "\r\n\r\n", 2)
		if len(parts) != 2 {
			t.Fatalf("unterminated frame in %q", rest)
		}
		var length int
		if _, err := fmt.Sscanf(parts[0], "Content-Length: %d", &length); err != nil {
			t.Fatalf("bad header %q", parts[0])
		}
		body := parts[1][:length]
		rest = parts[1][length:]

		var resp map[string]interface{}
		if err := json.Unmarshal([]byte(body), &resp); err != nil {
			t.Fatalf("bad body %q: %v", body, err)
		}
		responses = append(responses, resp)
	}
	return responses
}

func TestServerSession(t *testing.T) {
	var in bytes.Buffer
	in.WriteString(frame(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05"}}`))
	in.WriteString(frame(`{"jsonrpc":"2.0","id":2,"method":"echo","params":{}}`))
	in.WriteString(frame(`{"jsonrpc":"2.0","id":3,"method":"no/such/method"}`))

	var out bytes.Buffer
	srv := NewServerWithTransport("test-server", "0.1.0", NewTransport(&in, &out, &bytes.Buffer{}))
	srv.SetHandler("echo", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		return "echoed", nil
	})

	if err := srv.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	responses := readFramedResponses(t, out.String())
	if len(responses) != 3 {
		t.Fatalf("got %d responses, want 3", len(responses))
	}

	init, ok := responses[0]["result"].(map[string]interface{})
	if !ok {
		t.Fatalf("initialize result = %v", responses[0])
	}
	if init["protocolVersion"] != ProtocolVersion {
		t.Errorf("protocolVersion = %v", init["protocolVersion"])
	}
	serverInfo, _ := init["serverInfo"].(map[string]interface{})
	if serverInfo["name"] != "test-server" {
		t.Errorf("serverInfo = %v", serverInfo)
	}

	if responses[1]["result"] != "echoed" {
		t.Errorf("echo result = %v", responses[1]["result"])
	}

	errObj, ok := responses[2]["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error for unknown method, got %v", responses[2])
	}
	if errObj["code"] != float64(ErrCodeMethodNotFound) {
		t.Errorf("code = %v", errObj["code"])
	}
}

func TestServerReportsHandlerError(t *testing.T) {
	var in bytes.Buffer
	in.WriteString(frame(`{"jsonrpc":"2.0","id":1,"method":"boom"}`))
	in.WriteString(frame(`{"jsonrpc":"2.0","id":2,"method":"echo"}`))

	var out bytes.Buffer
	srv := NewServerWithTransport("test-server", "0.1.0", NewTransport(&in, &out, &bytes.Buffer{}))
	srv.SetHandler("boom", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		return nil, errors.New("backend unavailable")
	})
	srv.SetHandler("echo", func(ctx context.Context, params json.RawMessage) (interface{}, error) {
		return "still alive", nil
	})

	if err := srv.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	responses := readFramedResponses(t, out.String())
	if len(responses) != 2 {
		t.Fatalf("got %d responses, want 2", len(responses))
	}

	errObj, ok := responses[0]["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected handler error, got %v", responses[0])
	}
	if errObj["code"] != float64(ErrCodeHandlerError) {
		t.Errorf("code = %v, want %d", errObj["code"], ErrCodeHandlerError)
	}
	if errObj["message"] != "backend unavailable" {
		t.Errorf("message = %v", errObj["message"])
	}

	// The session survives a failed handler.
	if responses[1]["result"] != "still alive" {
		t.Errorf("followup result = %v", responses[1]["result"])
	}
}
