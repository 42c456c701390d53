package operation

import (
	"context"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/go-training/oauth-authorize/pkg/authorize"
	"github.com/go-training/oauth-authorize/pkg/core"
)

// NewMCPServer creates the MCP server exposing the authorization tools.
func NewMCPServer(name, version string, svc *authorize.Service) *server.MCPServer {
	mcpServer := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(MCPToolHandlerMiddleware()),
	)

	RegisterAuthorizeTools(mcpServer, svc)

	return mcpServer
}

// NewHTTPHandler returns a streamable HTTP server for s. Every tool call
// context carries store and the request ID assigned by the HTTP layer.
func NewHTTPHandler(s *server.MCPServer, store core.Store) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(s,
		server.WithHeartbeatInterval(30*time.Second),
		server.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			return withCallContext(ctx, r, store)
		}),
	)
}

func withCallContext(ctx context.Context, r *http.Request, store core.Store) context.Context {
	ctx = core.WithStore(ctx, store)
	if reqID := core.RequestIDFromContext(r.Context()); reqID != "" {
		return core.WithRequestIDValue(ctx, reqID)
	}
	return core.WithRequestID(ctx)
}
