package core

import (
	"net/url"

	"github.com/go-training/oauth-authorize/pkg/oautherr"
)

// Response types recognized at the authorization endpoint.
const (
	ResponseTypeCode    = "code"
	ResponseTypeToken   = "token"
	ResponseTypeIDToken = "id_token"
	ResponseTypeNone    = "none"
)

// SupportedResponseTypes returns the recognized response type tokens.
func SupportedResponseTypes() []string {
	return []string{ResponseTypeCode, ResponseTypeToken, ResponseTypeIDToken, ResponseTypeNone}
}

// Authorization request parameter names.
const (
	ParamClientID            = "client_id"
	ParamRedirectURI         = "redirect_uri"
	ParamResponseType        = "response_type"
	ParamScope               = "scope"
	ParamState               = "state"
	ParamCodeChallenge       = "code_challenge"
	ParamCodeChallengeMethod = "code_challenge_method"
)

var requestParams = []string{
	ParamClientID,
	ParamRedirectURI,
	ParamResponseType,
	ParamScope,
	ParamState,
	ParamCodeChallenge,
	ParamCodeChallengeMethod,
}

// AuthorizationRequest holds the parameters of one /authorize request.
// It is not modified while it is being validated.
type AuthorizationRequest struct {
	ClientID     string `json:"client_id"`
	RedirectURI  string `json:"redirect_uri,omitempty"`
	ResponseType string `json:"response_type"`
	// Scope is space separated. Empty means no scopes were requested.
	Scope string `json:"scope,omitempty"`
	// State is passed back to the client unmodified.
	State string `json:"state,omitempty"`
	// PKCE parameters are accepted and carried along but not verified here.
	CodeChallenge       string `json:"code_challenge,omitempty"`
	CodeChallengeMethod string `json:"code_challenge_method,omitempty"`
}

// AuthorizationRequestFromValues builds a request from query or form values.
// A parameter sent more than once is rejected with invalid_request.
func AuthorizationRequestFromValues(values url.Values) (*AuthorizationRequest, error) {
	for _, name := range requestParams {
		if len(values[name]) > 1 {
			return nil, oautherr.ErrInvalidRequest.WithDescriptionf("%s must not be included more than once", name)
		}
	}

	return &AuthorizationRequest{
		ClientID:            values.Get(ParamClientID),
		RedirectURI:         values.Get(ParamRedirectURI),
		ResponseType:        values.Get(ParamResponseType),
		Scope:               values.Get(ParamScope),
		State:               values.Get(ParamState),
		CodeChallenge:       values.Get(ParamCodeChallenge),
		CodeChallengeMethod: values.Get(ParamCodeChallengeMethod),
	}, nil
}
