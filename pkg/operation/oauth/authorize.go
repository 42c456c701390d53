package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/go-training/oauth-authorize/pkg/authorize"
	"github.com/go-training/oauth-authorize/pkg/core"
)

// ValidateAuthorizeRequestTool defines the MCP tool that runs an
// authorization request through validation without redirecting anywhere.
var ValidateAuthorizeRequestTool = mcp.NewTool("validate_authorize_request",
	mcp.WithDescription(`Validate an OAuth 2.0 authorization request

Checks client_id, redirect_uri, response_type and scope in that order and
stops at the first failure. The verdict reports the stage that failed, the
OAuth error code, and the values resolved before it. The server shows
every rejection on its own error page and never redirects.`),
	mcp.WithString(core.ParamClientID,
		mcp.Description("The client identifier."),
		mcp.Required(),
	),
	mcp.WithString(core.ParamResponseType,
		mcp.Description(`Space separated response types, e.g. "code" or "code id_token".`),
		mcp.Required(),
	),
	mcp.WithString(core.ParamRedirectURI,
		mcp.Description("Redirect URI. May be omitted when the client has exactly one registered."),
	),
	mcp.WithString(core.ParamScope,
		mcp.Description("Space separated scope names."),
	),
	mcp.WithString(core.ParamState,
		mcp.Description("Opaque client value. Passed through without validation."),
	),
)

// Verdict is the validate_authorize_request result.
type Verdict struct {
	Valid            bool     `json:"valid"`
	Stage            string   `json:"stage"`
	Error            string   `json:"error,omitempty"`
	ErrorDescription string   `json:"error_description,omitempty"`
	ClientID         string   `json:"client_id,omitempty"`
	RedirectURI      string   `json:"redirect_uri,omitempty"`
	ResponseTypes    []string `json:"response_types,omitempty"`
	Scopes           []string `json:"scopes,omitempty"`
}

// NewVerdict summarizes a validation result.
func NewVerdict(res *authorize.Result) Verdict {
	v := Verdict{
		Valid:         res.Valid,
		Stage:         res.Stage.String(),
		ResponseTypes: res.ResponseTypes,
		Scopes:        res.Scopes,
	}
	if res.Client != nil {
		v.ClientID = res.Client.ID
	}
	if res.RedirectURI != nil {
		v.RedirectURI = res.RedirectURI.String()
	}
	if res.Err != nil {
		v.Error = res.Err.Code
		v.ErrorDescription = res.Err.Description
	}
	return v
}

// HandleValidateAuthorizeRequestTool returns the handler for
// ValidateAuthorizeRequestTool backed by svc.
func HandleValidateAuthorizeRequestTool(svc *authorize.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := core.LoggerFromCtx(ctx)

		values := url.Values{}
		for name, arg := range request.GetArguments() {
			s, ok := arg.(string)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("argument %q must be a string", name)), nil
			}
			values.Set(name, s)
		}

		req, err := core.AuthorizationRequestFromValues(values)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		res := svc.ValidateRequest(ctx, req)
		data, err := json.Marshal(NewVerdict(res))
		if err != nil {
			logger.Error("Failed to marshal verdict", "error", err)
			return nil, err
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}
