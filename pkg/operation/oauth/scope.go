package oauth

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/go-training/oauth-authorize/pkg/core"
)

// ListOAuthScopesTool defines the MCP tool for listing registered scopes.
var ListOAuthScopesTool = mcp.NewTool("list_oauth_scopes",
	mcp.WithDescription("List all registered OAuth scopes"),
)

// HandleListOAuthScopesTool returns every registered scope as JSON.
func HandleListOAuthScopesTool(
	ctx context.Context,
	_ mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	logger := core.LoggerFromCtx(ctx)

	store, err := core.StoreFromContext(ctx)
	if err != nil {
		logger.Error("Missing store from context", "error", err)
		return nil, err
	}

	scopes, err := store.ListScopes(ctx)
	if err != nil {
		logger.Error("Failed to list scopes from store", "error", err)
		return nil, err
	}

	data, err := json.Marshal(scopes)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
