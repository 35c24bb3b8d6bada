// Package mcp implements the Model Context Protocol server side:
// JSON-RPC 2.0 over a Content-Length framed stream, with pluggable
// method handlers.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// HandlerFunc is a function that handles an MCP request
type HandlerFunc func(ctx context.Context, params json.RawMessage) (interface{}, error)

// Server is an MCP protocol server
type Server struct {
	transport *Transport
	handlers  map[string]HandlerFunc
	info      ServerInfo
	caps      ServerCapabilities
}

// NewServer creates a new MCP server over stdio
func NewServer(name, version string) *Server {
	return NewServerWithTransport(name, version, NewStdioTransport())
}

// NewServerWithTransport creates a new MCP server over the given transport
func NewServerWithTransport(name, version string, transport *Transport) *Server {
	return &Server{
		transport: transport,
		handlers:  make(map[string]HandlerFunc),
		info: ServerInfo{
			Name:    name,
			Version: version,
		},
		caps: ServerCapabilities{
			Tools: make(map[string]interface{}),
		},
	}
}

// SetHandler registers a handler for a method
func (s *Server) SetHandler(method string, handler HandlerFunc) {
	s.handlers[method] = handler
}

// SetCapabilities sets server capabilities
func (s *Server) SetCapabilities(caps ServerCapabilities) {
	s.caps = caps
}

// HandleInitialize handles the initialize request
func (s *Server) HandleInitialize(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var req InitializeRequest
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, fmt.Errorf("failed to parse initialize request: %w", err)
	}

	return InitializeResponse{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    s.caps,
		ServerInfo:      s.info,
	}, nil
}

// Run starts the server and processes requests until the stream ends
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.SetHandler("initialize", s.HandleInitialize)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			req, err := s.transport.ReadMessage()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				s.transport.WriteError(err)
				continue
			}

			resp := s.handleRequest(ctx, req)
			if err := s.transport.WriteMessage(resp); err != nil {
				s.transport.WriteError(err)
				continue
			}
		}
	}
}

func (s *Server) handleRequest(ctx context.Context, req *JSONRPCRequest) *JSONRPCResponse {
	if err := ValidateRequest(req); err != nil {
		return CreateErrorResponse(req.ID, ErrCodeInvalidRequest, err.Error(), nil)
	}

	handler, exists := s.handlers[req.Method]
	if !exists {
		return CreateErrorResponse(req.ID, ErrCodeMethodNotFound,
			fmt.Sprintf("method not found: %s", req.Method), nil)
	}

	result, err := handler(ctx, req.Params)
	if err != nil {
		return CreateHandlerErrorResponse(req.ID, err)
	}

	return CreateResponse(req.ID, result)
}
