package mcpserver

import (
	"net/http"

	apppublic "holdem-server/internal/app/public"

	"github.com/mark3labs/mcp-go/server"
)

type Server struct {
	publicSvc *apppublic.Service

	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
}

func New(publicSvc *apppublic.Service) *Server {
	mcpSrv := server.NewMCPServer(
		"holdem-server",
		"0.1.0",
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s := &Server{
		publicSvc:  publicSvc,
		mcpServer:  mcpSrv,
		httpServer: server.NewStreamableHTTPServer(mcpSrv, server.WithStateLess(true), server.WithDisableStreaming(true)),
	}
	s.registerTableTools()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.httpServer
}
