package oauth

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-training/oauth-authorize/pkg/authorize"
	"github.com/go-training/oauth-authorize/pkg/core"
	"github.com/go-training/oauth-authorize/pkg/store"
	"github.com/go-training/oauth-authorize/pkg/validator"
)

func seededStore(t *testing.T) core.Store {
	t.Helper()
	s := store.NewMemoryStore()
	require.NoError(t, store.ApplySeed(t.Context(), s, store.DefaultSeed()))
	return s
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	txt, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return txt.Text
}

func TestHandleListOAuthClientsTool(t *testing.T) {
	ctx := core.WithStore(t.Context(), seededStore(t))

	res, err := HandleListOAuthClientsTool(ctx, callRequest("list_oauth_clients", nil))
	require.NoError(t, err)

	var clients []core.Client
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &clients))
	require.Len(t, clients, 1)
	assert.Equal(t, "client1", clients[0].ID)
	assert.Empty(t, clients[0].Secret)
}

func TestHandleListOAuthScopesTool(t *testing.T) {
	ctx := core.WithStore(t.Context(), seededStore(t))

	res, err := HandleListOAuthScopesTool(ctx, callRequest("list_oauth_scopes", nil))
	require.NoError(t, err)

	var scopes []core.Scope
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &scopes))
	assert.Equal(t, []core.Scope{{Name: "read", Description: "read"}}, scopes)
}

func TestListTools_MissingStore(t *testing.T) {
	_, err := HandleListOAuthClientsTool(context.Background(), callRequest("list_oauth_clients", nil))
	assert.Error(t, err)

	_, err = HandleListOAuthScopesTool(context.Background(), callRequest("list_oauth_scopes", nil))
	assert.Error(t, err)
}

func newHandler(t *testing.T) func(map[string]any) (*mcp.CallToolResult, error) {
	s := seededStore(t)
	h := HandleValidateAuthorizeRequestTool(authorize.NewService(validator.New(s, s)))
	return func(args map[string]any) (*mcp.CallToolResult, error) {
		return h(t.Context(), callRequest("validate_authorize_request", args))
	}
}

func TestHandleValidateAuthorizeRequestTool_Valid(t *testing.T) {
	call := newHandler(t)

	res, err := call(map[string]any{
		"client_id":     "client1",
		"response_type": "code",
		"scope":         "read",
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var v Verdict
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &v))
	assert.True(t, v.Valid)
	assert.Equal(t, "done", v.Stage)
	assert.Equal(t, "client1", v.ClientID)
	assert.Equal(t, "https://localhost:4000", v.RedirectURI)
	assert.Equal(t, []string{"code"}, v.ResponseTypes)
	assert.Equal(t, []string{"read"}, v.Scopes)
}

func TestHandleValidateAuthorizeRequestTool_Rejected(t *testing.T) {
	call := newHandler(t)

	res, err := call(map[string]any{
		"client_id":     "client1",
		"redirect_uri":  "https://localhost:4000",
		"response_type": "code",
		"scope":         "read admin",
		"state":         "s1",
	})
	require.NoError(t, err)

	var v Verdict
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &v))
	assert.False(t, v.Valid)
	assert.Equal(t, "scope", v.Stage)
	assert.Equal(t, "invalid_scope", v.Error)
	assert.Equal(t, "https://localhost:4000", v.RedirectURI)
	assert.Equal(t, []string{"code"}, v.ResponseTypes)
	assert.Empty(t, v.Scopes)
	assert.NotContains(t, resultText(t, res), "error_redirect")
}

func TestHandleValidateAuthorizeRequestTool_UnverifiedRedirect(t *testing.T) {
	call := newHandler(t)

	res, err := call(map[string]any{
		"client_id":     "client1",
		"redirect_uri":  "https://attacker.example",
		"response_type": "code",
	})
	require.NoError(t, err)

	var v Verdict
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &v))
	assert.Equal(t, "redirect_uri", v.Stage)
	assert.Equal(t, "invalid_request", v.Error)
	assert.Empty(t, v.RedirectURI)
}

func TestHandleValidateAuthorizeRequestTool_BadArgument(t *testing.T) {
	call := newHandler(t)

	res, err := call(map[string]any{"client_id": 42})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "client_id")
}
