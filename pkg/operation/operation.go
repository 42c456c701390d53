// Package operation registers the authorization server's MCP tools.
package operation

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/go-training/oauth-authorize/pkg/authorize"
	"github.com/go-training/oauth-authorize/pkg/operation/oauth"
)

/*
RegisterAuthorizeTools registers the authorization tools to the specified MCPServer instance.

Parameters:
  - s: Pointer to the MCPServer instance where the tools will be registered.
  - svc: The service that validate_authorize_request runs requests through.

The listing tools read the store from the tool call context (see core.WithStore).
*/
func RegisterAuthorizeTools(s *server.MCPServer, svc *authorize.Service) {
	tool := &Tool{}

	tool.RegisterRead(server.ServerTool{
		Tool:    oauth.ValidateAuthorizeRequestTool,
		Handler: oauth.HandleValidateAuthorizeRequestTool(svc),
	})
	tool.RegisterRead(server.ServerTool{
		Tool:    oauth.ListOAuthClientsTool,
		Handler: oauth.HandleListOAuthClientsTool,
	})
	tool.RegisterRead(server.ServerTool{
		Tool:    oauth.ListOAuthScopesTool,
		Handler: oauth.HandleListOAuthScopesTool,
	})

	s.AddTools(tool.Tools()...)
}

// Tool collects the tools to be registered with an MCPServer. Every tool
// here only reads; none changes clients, scopes or requests.
type Tool struct {
	read []server.ServerTool
}

// RegisterRead registers a ServerTool as a read operation.
func (t *Tool) RegisterRead(s server.ServerTool) {
	t.read = append(t.read, s)
}

// Tools returns all registered ServerTools in registration order.
func (t *Tool) Tools() []server.ServerTool {
	return append([]server.ServerTool(nil), t.read...)
}
