package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	solace "github.com/unowned-ai/solace/pkg"
	"github.com/unowned-ai/solace/pkg/session"
)

// SolaceMCPServer exposes a Session as MCP tools over stdio.
type SolaceMCPServer struct {
	mcpServer *server.MCPServer
	session   *session.Session
	logger    *slog.Logger
}

// NewSolaceMCPServer registers every tool against sess. The caller owns the
// session and its store.
func NewSolaceMCPServer(sess *session.Session, logger *slog.Logger) *SolaceMCPServer {
	if logger == nil {
		logger = slog.Default()
	}

	s := &SolaceMCPServer{
		mcpServer: server.NewMCPServer(
			"Solace MCP Server",
			solace.Version,
			server.WithResourceCapabilities(true, true),
			server.WithLogging(),
			server.WithRecovery(),
		),
		session: sess,
		logger:  logger,
	}
	s.registerTools()
	return s
}

// Start runs the stdio event loop until stdin closes.
func (s *SolaceMCPServer) Start() error {
	s.logger.Info("serving mcp over stdio")
	return server.ServeStdio(s.mcpServer)
}

// MCPRawServer exposes the raw mcp-go server.
func (s *SolaceMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}
