// Package server wires configuration, services, middleware, and the
// protocol loop into the running MCP server.
package server

import (
	"context"
	"fmt"

	"github.com/ragstack/ragdb-mcp/internal/config"
	"github.com/ragstack/ragdb-mcp/internal/database"
	"github.com/ragstack/ragdb-mcp/internal/external"
	"github.com/ragstack/ragdb-mcp/internal/logging"
	"github.com/ragstack/ragdb-mcp/internal/middleware"
	"github.com/ragstack/ragdb-mcp/internal/rag"
	"github.com/ragstack/ragdb-mcp/internal/tools"
	"github.com/ragstack/ragdb-mcp/pkg/mcp"
)

// Server is the assembled MCP tool server.
type Server struct {
	mcpServer  *mcp.Server
	configMgr  *config.ConfigManager
	logger     *logging.Logger
	db         *database.Service
	dispatcher *tools.Dispatcher
	middleware *middleware.Manager
}

// NewServer loads configuration and assembles all components. The
// database connection is attempted but a failure only warns: the
// connection is retried lazily on first use.
func NewServer(configPath string) (*Server, error) {
	configMgr := config.NewConfigManager()
	cfg, err := configMgr.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.NewLogger(&cfg.Logging)

	db := database.New(cfg.Database.ConnString(), logger.Component("database"))
	if err := db.Connect(context.Background()); err != nil {
		logger.Warn("Database not reachable at startup, will retry on first use", map[string]interface{}{
			"error": err.Error(),
		})
	}

	ragClient := rag.NewClient(&cfg.RAG, logger.Component("rag"))
	if !ragClient.Configured() {
		logger.Warn("RAG service not fully configured, RAG tools will fail until it is", nil)
	}

	httpCaller := external.NewClient(logger.Component("external"))

	dispatcher := tools.NewDispatcher(db, ragClient, httpCaller, logger.Component("tools"))

	s := &Server{
		mcpServer: mcp.NewServer(
			cfg.Server.GetName(),
			cfg.Server.GetVersion(),
		),
		configMgr:  configMgr,
		logger:     logger,
		db:         db,
		dispatcher: dispatcher,
	}

	s.setupMiddleware()
	s.registerHandlers()
	return s, nil
}

// Run starts the protocol loop and blocks until the input stream ends
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Server starting", map[string]interface{}{
		"name":  s.configMgr.GetServerSettings().GetName(),
		"tools": len(s.dispatcher.List()),
	})

	err := s.mcpServer.Run(ctx)

	s.db.Close(context.Background())
	s.logger.Info("Server stopped", nil)
	return err
}

func (s *Server) registerHandlers() {
	s.mcpServer.SetHandler("tools/list", s.handleListTools)
	s.mcpServer.SetHandler("tools/call", s.handleCallTool)
}
