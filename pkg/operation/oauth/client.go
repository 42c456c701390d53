// Package oauth provides MCP tools for inspecting OAuth clients and scopes
// and for dry-running authorization requests.
package oauth

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/go-training/oauth-authorize/pkg/core"
)

// ListOAuthClientsTool defines the MCP tool for listing all OAuth clients.
var ListOAuthClientsTool = mcp.NewTool("list_oauth_clients",
	mcp.WithDescription("List all registered OAuth clients. Client secrets are not included."),
)

// HandleListOAuthClientsTool is an MCP tool handler that retrieves and returns
// a list of all registered OAuth clients from the store.
func HandleListOAuthClientsTool(
	ctx context.Context,
	_ mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	logger := core.LoggerFromCtx(ctx)
	logger.Info("Handling list_oauth_clients tool")

	store, err := core.StoreFromContext(ctx)
	if err != nil {
		logger.Error("Missing store from context", "error", err)
		return nil, err
	}

	clients, err := store.ListClients(ctx)
	if err != nil {
		logger.Error("Failed to list clients from store", "error", err)
		return nil, err
	}
	for _, c := range clients {
		c.Secret = ""
	}

	data, err := json.Marshal(clients)
	if err != nil {
		logger.Error("Failed to marshal clients to JSON", "error", err)
		return nil, err
	}

	logger.Info("Successfully retrieved OAuth clients", "count", len(clients))
	return mcp.NewToolResultText(string(data)), nil
}
