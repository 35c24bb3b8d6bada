package middleware

import (
	"context"
	"sync"

	"github.com/ragstack/ragdb-mcp/internal/logging"
)

// Manager collects middleware registrations and serves the built
// chain. The chain is rebuilt lazily after each registration.
type Manager struct {
	mu          sync.Mutex
	middlewares []Middleware
	chain       *Chain
	logger      *logging.Logger
}

// NewManager creates an empty middleware manager.
func NewManager(logger *logging.Logger) *Manager {
	return &Manager{logger: logger}
}

// Register adds a middleware and invalidates the built chain.
func (m *Manager) Register(mw Middleware) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.middlewares = append(m.middlewares, mw)
	m.chain = nil
	m.logger.Debug("Registered middleware", map[string]interface{}{
		"name":    mw.Name(),
		"order":   mw.Order(),
		"enabled": mw.Enabled(),
	})
}

// Execute runs a tool call through the chain.
func (m *Manager) Execute(ctx context.Context, req *Request, final Handler) (*Response, error) {
	m.mu.Lock()
	if m.chain == nil {
		m.chain = NewChain(m.middlewares)
	}
	chain := m.chain
	m.mu.Unlock()

	return chain.Execute(ctx, req, final)
}
