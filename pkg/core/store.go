//go:generate mockgen -destination=mocks/mock_store.go -package=mocks github.com/go-training/oauth-authorize/pkg/core ClientReader,ScopeReader

package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrClientNotFound is returned by ClientReader.GetClient for unknown client IDs.
var ErrClientNotFound = errors.New("client not found")

// ClientType is the confidentiality class of a client (RFC 6749 Section 2.1).
type ClientType string

const (
	// ClientTypePublic clients cannot keep a secret (browser, native apps).
	ClientTypePublic ClientType = "public"
	// ClientTypeConfidential clients can keep a secret (server-side apps).
	ClientTypeConfidential ClientType = "confidential"
)

// ParseClientType parses s case-insensitively.
func ParseClientType(s string) (ClientType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public":
		return ClientTypePublic, nil
	case "confidential":
		return ClientTypeConfidential, nil
	default:
		return "", fmt.Errorf("unknown client type %q", s)
	}
}

// String returns the string representation of a ClientType.
func (t ClientType) String() string {
	return string(t)
}

// Client represents an OAuth 2.0 client application.
type Client struct {
	ID           string     `json:"client_id" yaml:"client_id"`
	Name         string     `json:"client_name" yaml:"client_name"`
	Description  string     `json:"description,omitempty" yaml:"description,omitempty"`
	Type         ClientType `json:"client_type" yaml:"client_type"`
	RedirectURIs []string   `json:"redirect_uris" yaml:"redirect_uris"`
	Secret       string     `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`
	CreatedAt    int64      `json:"created_at" yaml:"-"`
	UpdatedAt    int64      `json:"updated_at" yaml:"-"`
}

// IsConfidential reports whether the client is confidential.
func (c *Client) IsConfidential() bool {
	return c.Type == ClientTypeConfidential
}

// Scope is a registered scope. Name is the unique key.
type Scope struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ClientReader resolves registered clients.
type ClientReader interface {
	// GetClient returns ErrClientNotFound when clientID is not registered.
	GetClient(ctx context.Context, clientID string) (*Client, error)
	ListClients(ctx context.Context) ([]*Client, error)
}

// ScopeReader resolves registered scopes.
type ScopeReader interface {
	// GetScopes returns the registered subset of names, matched exactly.
	// Unknown names are omitted, not reported as errors.
	GetScopes(ctx context.Context, names []string) ([]Scope, error)
	ListScopes(ctx context.Context) ([]Scope, error)
}

// ClientWriter manages client registrations.
type ClientWriter interface {
	CreateClient(ctx context.Context, client *Client) error
	UpdateClient(ctx context.Context, client *Client) error
	DeleteClient(ctx context.Context, clientID string) error
}

// ScopeWriter manages scope registrations.
type ScopeWriter interface {
	CreateScope(ctx context.Context, scope *Scope) error
	UpdateScope(ctx context.Context, scope *Scope) error
	DeleteScope(ctx context.Context, name string) error
}

// Store defines the interface for storing and retrieving clients and scopes.
type Store interface {
	ClientReader
	ClientWriter
	ScopeReader
	ScopeWriter
	Close() error
}
