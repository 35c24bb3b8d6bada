package middleware

import (
	"context"
	"sort"
)

// Chain is an immutable, ordered sequence of enabled middleware.
// Disabled middleware is filtered out and the rest sorted once at
// construction, so executing a call does no per-call sorting.
type Chain struct {
	middlewares []Middleware
}

// NewChain builds a chain from the given middleware, keeping only the
// enabled ones in ascending Order.
func NewChain(middlewares []Middleware) *Chain {
	enabled := make([]Middleware, 0, len(middlewares))
	for _, mw := range middlewares {
		if mw.Enabled() {
			enabled = append(enabled, mw)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Order() < enabled[j].Order()
	})

	return &Chain{middlewares: enabled}
}

// Execute runs the request through the chain, ending at final.
func (c *Chain) Execute(ctx context.Context, req *Request, final Handler) (*Response, error) {
	var step func(ctx context.Context, index int) (*Response, error)
	step = func(ctx context.Context, index int) (*Response, error) {
		if index >= len(c.middlewares) {
			return final(ctx)
		}
		return c.middlewares[index].Execute(ctx, req, func(ctx context.Context) (*Response, error) {
			return step(ctx, index+1)
		})
	}
	return step(ctx, 0)
}
