package server

import (
	"github.com/ragstack/ragdb-mcp/internal/middleware"
	"github.com/ragstack/ragdb-mcp/internal/middleware/builtin"
)

func (s *Server) setupMiddleware() {
	cfg := s.configMgr.GetConfig()
	s.middleware = middleware.NewManager(s.logger.Component("middleware"))

	logCalls := true
	if cfg.Logging.EnableRequestLogging != nil {
		logCalls = *cfg.Logging.EnableRequestLogging
	}
	logOutcomes := false
	if cfg.Logging.EnableResponseLogging != nil {
		logOutcomes = *cfg.Logging.EnableResponseLogging
	}

	s.middleware.Register(builtin.NewRequestID())
	s.middleware.Register(builtin.NewValidation())
	s.middleware.Register(builtin.NewCallLogging(s.logger, logCalls, logOutcomes))
	s.middleware.Register(builtin.NewTimeout(cfg.Server.GetTimeout(), s.logger))
	s.middleware.Register(builtin.NewErrorRecovery(s.logger))
}
