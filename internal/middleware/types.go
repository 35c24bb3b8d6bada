// Package middleware provides an ordered processing chain wrapped
// around tool calls.
package middleware

import "context"

// Request is one tool invocation passing through the chain.
type Request struct {
	Tool      string
	Arguments map[string]interface{}
	// Meta carries per-call values added by middleware, such as the
	// correlation id.
	Meta map[string]interface{}
}

// Response is the rendered outcome of a tool invocation: a single
// block of display text, flagged when it is an error envelope.
type Response struct {
	Text    string
	IsError bool
}

// Handler produces the response for the request bound to it.
type Handler func(ctx context.Context) (*Response, error)

// Middleware wraps tool call handling. Lower Order runs first.
type Middleware interface {
	Name() string
	Order() int
	Enabled() bool
	Execute(ctx context.Context, req *Request, next Handler) (*Response, error)
}
