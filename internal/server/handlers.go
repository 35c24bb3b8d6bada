package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ragstack/ragdb-mcp/internal/middleware"
	"github.com/ragstack/ragdb-mcp/pkg/mcp"
)

func (s *Server) handleListTools(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return mcp.ListToolsResponse{Tools: s.dispatcher.List()}, nil
}

func (s *Server) handleCallTool(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var req mcp.CallToolRequest
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, fmt.Errorf("failed to parse tool call request: %w", err)
	}

	call := &middleware.Request{
		Tool:      req.Name,
		Arguments: req.Arguments,
		Meta:      map[string]interface{}{},
	}

	resp, err := s.middleware.Execute(ctx, call, func(ctx context.Context) (*middleware.Response, error) {
		text, isError := s.dispatcher.Dispatch(ctx, call.Tool, call.Arguments)
		return &middleware.Response{Text: text, IsError: isError}, nil
	})
	if err != nil {
		return nil, err
	}

	return mcp.ToolResult{
		Content: []mcp.ContentBlock{{Type: "text", Text: resp.Text}},
		IsError: resp.IsError,
	}, nil
}
