// Package validator implements the individual checks applied to the
// parameters of an OAuth 2.0 authorization request.
package validator

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/go-training/oauth-authorize/pkg/core"
	"github.com/go-training/oauth-authorize/pkg/oautherr"
	"github.com/go-training/oauth-authorize/pkg/result"
)

var supportedResponseTypes = map[string]struct{}{
	core.ResponseTypeCode:    {},
	core.ResponseTypeToken:   {},
	core.ResponseTypeIDToken: {},
	core.ResponseTypeNone:    {},
}

// ParameterValidator checks authorization request parameters against the
// registered clients and scopes. It holds no per-request state and is safe
// for concurrent use.
type ParameterValidator struct {
	clients core.ClientReader
	scopes  core.ScopeReader
}

// New creates a ParameterValidator backed by the given lookups.
func New(clients core.ClientReader, scopes core.ScopeReader) *ParameterValidator {
	if clients == nil || scopes == nil {
		panic("validator: nil client or scope reader")
	}
	return &ParameterValidator{clients: clients, scopes: scopes}
}

// ValidateClientID resolves the client registered under clientID.
// An empty and an unknown client_id fail identically so that client
// existence is not disclosed.
func (v *ParameterValidator) ValidateClientID(ctx context.Context, clientID string) result.Result[*core.Client] {
	if strings.TrimSpace(clientID) == "" {
		return result.Failure[*core.Client](oautherr.ErrInvalidRequest)
	}

	client, err := v.clients.GetClient(ctx, clientID)
	switch {
	case errors.Is(err, core.ErrClientNotFound), err == nil && client == nil:
		return result.Failure[*core.Client](oautherr.ErrInvalidRequest)
	case err != nil:
		core.LoggerFromCtx(ctx).Error("client lookup failed", "client_id", clientID, "error", err)
		return result.Failure[*core.Client](oautherr.ErrServerError)
	}

	return result.Success(client)
}

// ValidateRedirectURI checks redirectURI against the client's registered
// redirect URIs and returns the redirect target to use. When redirectURI is
// empty and exactly one URI is registered, that URI is used.
//
// A failure here means the redirect target is untrusted: callers must not
// redirect the user-agent to it.
func (v *ParameterValidator) ValidateRedirectURI(redirectURI string, client *core.Client) result.Result[*url.URL] {
	if client == nil {
		panic("validator: ValidateRedirectURI called without a resolved client")
	}

	if len(client.RedirectURIs) == 0 {
		return result.Failure[*url.URL](oautherr.ErrInvalidRequest)
	}

	if strings.TrimSpace(redirectURI) == "" {
		if len(client.RedirectURIs) != 1 {
			return result.Failure[*url.URL](oautherr.ErrInvalidRequest)
		}
		sole, ok := parseHTTPSURI(client.RedirectURIs[0])
		if !ok {
			return result.Failure[*url.URL](oautherr.ErrInvalidRequest)
		}
		return result.Success(sole)
	}

	parsed, ok := parseHTTPSURI(redirectURI)
	if !ok {
		return result.Failure[*url.URL](oautherr.ErrInvalidRequest)
	}

	for _, registered := range client.RedirectURIs {
		if redirectURIMatches(registered, redirectURI) {
			return result.Success(parsed)
		}
	}

	return result.Failure[*url.URL](oautherr.ErrInvalidRequest)
}

// ValidateResponseType checks that every token of responseType is
// recognized and that confidential clients do not request the implicit
// "token" response type. It returns the normalized tokens.
func (v *ParameterValidator) ValidateResponseType(responseType string, client *core.Client) result.Result[[]string] {
	if client == nil {
		panic("validator: ValidateResponseType called without a resolved client")
	}

	if strings.TrimSpace(responseType) == "" {
		return result.Failure[[]string](oautherr.ErrInvalidRequest)
	}

	var tokens []string
	for _, token := range strings.Split(responseType, " ") {
		if token = strings.TrimSpace(token); token != "" {
			tokens = append(tokens, token)
		}
	}

	for _, token := range tokens {
		if _, ok := supportedResponseTypes[token]; !ok {
			return result.Failure[[]string](oautherr.ErrInvalidRequest)
		}
	}

	if client.IsConfidential() {
		for _, token := range tokens {
			if token == core.ResponseTypeToken {
				return result.Failure[[]string](oautherr.ErrUnauthorizedClient)
			}
		}
	}

	return result.Success(tokens)
}

// ValidateScope checks that every requested scope is registered. An empty
// scope is valid and requests the default claims. The first unregistered
// scope fails the check.
func (v *ParameterValidator) ValidateScope(ctx context.Context, scope string) result.Result[[]string] {
	if strings.TrimSpace(scope) == "" {
		return result.Success([]string{})
	}

	requested := strings.Split(scope, " ")
	for i := range requested {
		requested[i] = strings.TrimSpace(requested[i])
	}

	found, err := v.scopes.GetScopes(ctx, requested)
	if err != nil {
		core.LoggerFromCtx(ctx).Error("scope lookup failed", "scope", scope, "error", err)
		return result.Failure[[]string](oautherr.ErrServerError)
	}

	registered := make(map[string]struct{}, len(found))
	for _, s := range found {
		registered[s.Name] = struct{}{}
	}

	for _, name := range requested {
		if _, ok := registered[name]; !ok {
			return result.Failure[[]string](oautherr.ErrInvalidScope)
		}
	}

	return result.Success(requested)
}

// parseHTTPSURI parses raw as an absolute https URI with a host.
func parseHTTPSURI(raw string) (*url.URL, bool) {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, false
	}
	if !strings.EqualFold(u.Scheme, "https") {
		return nil, false
	}
	return u, true
}

// redirectURIMatches compares case-insensitively after dropping one trailing
// slash from the registered value. The supplied value is used as is, so a
// registered "https://a.example/cb/" only matches "https://a.example/cb".
func redirectURIMatches(registered, supplied string) bool {
	return strings.EqualFold(strings.TrimSuffix(registered, "/"), supplied)
}
