// Package store provides the client and scope registries backing
// authorization request validation.
package store

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/go-training/oauth-authorize/pkg/core"
)

var (
	// ErrClientNotFound is returned when a client is not found in the store.
	// It is core.ErrClientNotFound so lookups can be checked without
	// importing this package.
	ErrClientNotFound = core.ErrClientNotFound
	// ErrClientExists is returned when creating a client whose ID is taken.
	ErrClientExists = errors.New("client already exists")
	// ErrNilClient is returned when attempting to save a nil client.
	ErrNilClient = errors.New("client cannot be nil")
	// ErrEmptyClientID is returned when the client ID string is empty.
	ErrEmptyClientID = errors.New("client ID cannot be empty")
	// ErrInvalidClientType is returned for a client type other than public or confidential.
	ErrInvalidClientType = errors.New("invalid client type")
	// ErrInvalidRedirectURI is returned when a registered redirect URI is not an absolute https URI.
	ErrInvalidRedirectURI = errors.New("redirect URI must be an absolute https URI")

	// ErrScopeNotFound is returned when a scope is not found in the store.
	ErrScopeNotFound = errors.New("scope not found")
	// ErrScopeExists is returned when creating a scope whose name is taken.
	ErrScopeExists = errors.New("scope already exists")
	// ErrNilScope is returned when attempting to save a nil scope.
	ErrNilScope = errors.New("scope cannot be nil")
	// ErrEmptyScopeName is returned when the scope name is empty.
	ErrEmptyScopeName = errors.New("scope name cannot be empty")
	// ErrInvalidScopeName is returned when a scope name contains whitespace.
	ErrInvalidScopeName = errors.New("scope name cannot contain whitespace")
)

func validateClient(client *core.Client) error {
	if client == nil {
		return ErrNilClient
	}
	if strings.TrimSpace(client.ID) == "" {
		return ErrEmptyClientID
	}
	if client.Type != core.ClientTypePublic && client.Type != core.ClientTypeConfidential {
		return fmt.Errorf("%w: %q", ErrInvalidClientType, client.Type)
	}
	for _, raw := range client.RedirectURIs {
		u, err := url.Parse(raw)
		if err != nil || !u.IsAbs() || u.Host == "" || !strings.EqualFold(u.Scheme, "https") {
			return fmt.Errorf("%w: %q", ErrInvalidRedirectURI, raw)
		}
	}
	return nil
}

func validateScope(scope *core.Scope) error {
	if scope == nil {
		return ErrNilScope
	}
	if scope.Name == "" {
		return ErrEmptyScopeName
	}
	if strings.ContainsFunc(scope.Name, isSpace) {
		return fmt.Errorf("%w: %q", ErrInvalidScopeName, scope.Name)
	}
	return nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// cloneClient returns a copy that shares no slices with c.
func cloneClient(c *core.Client) *core.Client {
	cp := *c
	cp.RedirectURIs = slices.Clone(c.RedirectURIs)
	return &cp
}
