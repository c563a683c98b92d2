package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/urmzd/plasma-remote/pkg/assistant"
	"github.com/urmzd/plasma-remote/pkg/bridge"
	"github.com/urmzd/plasma-remote/pkg/channels"
	"github.com/urmzd/plasma-remote/pkg/remote"
)

// Deps are the services exposed as tools
type Deps struct {
	Dispatcher *remote.Dispatcher
	Shortcuts  *remote.Shortcuts
	Bridge     *bridge.Manager
	Lineup     *channels.Lineup
	Assistant  *assistant.Assistant
}

// Server wraps the MCP server with the remote's control functionality
type Server struct {
	mcpServer *server.MCPServer
	deps      Deps
}

// NewServer creates a new MCP server for remote control
func NewServer(deps Deps) *Server {
	if deps.Lineup == nil {
		deps.Lineup = channels.Default()
	}
	s := &Server{deps: deps}

	s.mcpServer = server.NewMCPServer(
		"plasma-remote",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// ServeStdio starts the MCP server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
