package store

import (
	"context"
	"errors"
	"testing"

	"github.com/go-training/oauth-authorize/pkg/core"
)

// testStores runs the same behavioral checks against any core.Store.
func testStores(t *testing.T, newStore func(t *testing.T) core.Store) {
	t.Run("ClientLifecycle", func(t *testing.T) { testClientLifecycle(t, newStore(t)) })
	t.Run("ClientValidation", func(t *testing.T) { testClientValidation(t, newStore(t)) })
	t.Run("ClientCopies", func(t *testing.T) { testClientCopies(t, newStore(t)) })
	t.Run("ListClients", func(t *testing.T) { testListClients(t, newStore(t)) })
	t.Run("ScopeLifecycle", func(t *testing.T) { testScopeLifecycle(t, newStore(t)) })
	t.Run("GetScopes", func(t *testing.T) { testGetScopes(t, newStore(t)) })
	t.Run("ScopeValidation", func(t *testing.T) { testScopeValidation(t, newStore(t)) })
}

func newClient(id string) *core.Client {
	return &core.Client{
		ID:           id,
		Name:         id + " app",
		Type:         core.ClientTypePublic,
		RedirectURIs: []string{"https://" + id + ".example/callback"},
	}
}

func testClientLifecycle(t *testing.T, s core.Store) {
	ctx := context.Background()

	client := newClient("lifecycle")
	if err := s.CreateClient(ctx, client); err != nil {
		t.Fatalf("CreateClient() error = %v", err)
	}

	if err := s.CreateClient(ctx, client); !errors.Is(err, ErrClientExists) {
		t.Errorf("CreateClient() duplicate error = %v, want %v", err, ErrClientExists)
	}

	got, err := s.GetClient(ctx, "lifecycle")
	if err != nil {
		t.Fatalf("GetClient() error = %v", err)
	}
	if got.Name != "lifecycle app" {
		t.Errorf("GetClient() name = %v, want %v", got.Name, "lifecycle app")
	}
	if got.CreatedAt == 0 || got.UpdatedAt == 0 {
		t.Errorf("GetClient() timestamps not set: created=%d updated=%d", got.CreatedAt, got.UpdatedAt)
	}
	created := got.CreatedAt

	updated := newClient("lifecycle")
	updated.Type = core.ClientTypeConfidential
	updated.Secret = "s3cret"
	if err := s.UpdateClient(ctx, updated); err != nil {
		t.Fatalf("UpdateClient() error = %v", err)
	}

	got, err = s.GetClient(ctx, "lifecycle")
	if err != nil {
		t.Fatalf("GetClient() after update error = %v", err)
	}
	if !got.IsConfidential() {
		t.Errorf("GetClient() type = %v, want %v", got.Type, core.ClientTypeConfidential)
	}
	if got.CreatedAt != created {
		t.Errorf("UpdateClient() changed CreatedAt from %d to %d", created, got.CreatedAt)
	}

	if err := s.UpdateClient(ctx, newClient("missing")); !errors.Is(err, ErrClientNotFound) {
		t.Errorf("UpdateClient() missing error = %v, want %v", err, ErrClientNotFound)
	}

	if err := s.DeleteClient(ctx, "lifecycle"); err != nil {
		t.Fatalf("DeleteClient() error = %v", err)
	}
	if _, err := s.GetClient(ctx, "lifecycle"); !errors.Is(err, core.ErrClientNotFound) {
		t.Errorf("GetClient() after delete error = %v, want %v", err, core.ErrClientNotFound)
	}
	if err := s.DeleteClient(ctx, "lifecycle"); !errors.Is(err, ErrClientNotFound) {
		t.Errorf("DeleteClient() twice error = %v, want %v", err, ErrClientNotFound)
	}
}

func testClientValidation(t *testing.T, s core.Store) {
	ctx := context.Background()

	tests := []struct {
		name    string
		client  *core.Client
		wantErr error
	}{
		{"nil client", nil, ErrNilClient},
		{"empty id", &core.Client{Type: core.ClientTypePublic}, ErrEmptyClientID},
		{"blank id", &core.Client{ID: "  ", Type: core.ClientTypePublic}, ErrEmptyClientID},
		{"unknown type", &core.Client{ID: "x", Type: "trusted"}, ErrInvalidClientType},
		{"http redirect", &core.Client{ID: "x", Type: core.ClientTypePublic, RedirectURIs: []string{"http://x.example/cb"}}, ErrInvalidRedirectURI},
		{"relative redirect", &core.Client{ID: "x", Type: core.ClientTypePublic, RedirectURIs: []string{"/cb"}}, ErrInvalidRedirectURI},
		{"no host", &core.Client{ID: "x", Type: core.ClientTypePublic, RedirectURIs: []string{"https:///cb"}}, ErrInvalidRedirectURI},
		{"no redirect uris", &core.Client{ID: "bare", Type: core.ClientTypePublic}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.CreateClient(ctx, tt.client)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateClient() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func testClientCopies(t *testing.T, s core.Store) {
	ctx := context.Background()

	client := newClient("copy")
	if err := s.CreateClient(ctx, client); err != nil {
		t.Fatalf("CreateClient() error = %v", err)
	}
	client.RedirectURIs[0] = "https://evil.example/cb"

	got, err := s.GetClient(ctx, "copy")
	if err != nil {
		t.Fatalf("GetClient() error = %v", err)
	}
	if got.RedirectURIs[0] != "https://copy.example/callback" {
		t.Errorf("store shares redirect URIs with caller: %v", got.RedirectURIs)
	}
	if client.CreatedAt != 0 {
		t.Errorf("CreateClient() modified the caller's client")
	}
}

func testListClients(t *testing.T, s core.Store) {
	ctx := context.Background()

	clients, err := s.ListClients(ctx)
	if err != nil {
		t.Fatalf("ListClients() error = %v", err)
	}
	if len(clients) != 0 {
		t.Errorf("ListClients() on empty store = %d clients, want 0", len(clients))
	}

	for _, id := range []string{"charlie", "alpha", "bravo"} {
		if err := s.CreateClient(ctx, newClient(id)); err != nil {
			t.Fatalf("CreateClient(%s) error = %v", id, err)
		}
	}
	if err := s.DeleteClient(ctx, "bravo"); err != nil {
		t.Fatalf("DeleteClient() error = %v", err)
	}

	clients, err = s.ListClients(ctx)
	if err != nil {
		t.Fatalf("ListClients() error = %v", err)
	}
	var ids []string
	for _, c := range clients {
		ids = append(ids, c.ID)
	}
	if len(ids) != 2 || ids[0] != "alpha" || ids[1] != "charlie" {
		t.Errorf("ListClients() ids = %v, want [alpha charlie]", ids)
	}
}

func testScopeLifecycle(t *testing.T, s core.Store) {
	ctx := context.Background()

	if err := s.CreateScope(ctx, &core.Scope{Name: "read", Description: "read"}); err != nil {
		t.Fatalf("CreateScope() error = %v", err)
	}
	if err := s.CreateScope(ctx, &core.Scope{Name: "read"}); !errors.Is(err, ErrScopeExists) {
		t.Errorf("CreateScope() duplicate error = %v, want %v", err, ErrScopeExists)
	}

	if err := s.UpdateScope(ctx, &core.Scope{Name: "read", Description: "Read access"}); err != nil {
		t.Fatalf("UpdateScope() error = %v", err)
	}
	if err := s.UpdateScope(ctx, &core.Scope{Name: "write"}); !errors.Is(err, ErrScopeNotFound) {
		t.Errorf("UpdateScope() missing error = %v, want %v", err, ErrScopeNotFound)
	}

	scopes, err := s.ListScopes(ctx)
	if err != nil {
		t.Fatalf("ListScopes() error = %v", err)
	}
	if len(scopes) != 1 || scopes[0].Description != "Read access" {
		t.Errorf("ListScopes() = %v, want the updated read scope", scopes)
	}

	if err := s.DeleteScope(ctx, "read"); err != nil {
		t.Fatalf("DeleteScope() error = %v", err)
	}
	if err := s.DeleteScope(ctx, "read"); !errors.Is(err, ErrScopeNotFound) {
		t.Errorf("DeleteScope() twice error = %v, want %v", err, ErrScopeNotFound)
	}
}

func testGetScopes(t *testing.T, s core.Store) {
	ctx := context.Background()

	for _, name := range []string{"write", "read", "profile"} {
		if err := s.CreateScope(ctx, &core.Scope{Name: name}); err != nil {
			t.Fatalf("CreateScope(%s) error = %v", name, err)
		}
	}

	tests := []struct {
		name  string
		names []string
		want  []string
	}{
		{"none asked", nil, nil},
		{"all registered", []string{"read", "write"}, []string{"read", "write"}},
		{"unknown omitted", []string{"read", "admin"}, []string{"read"}},
		{"exact match only", []string{"READ", "rea"}, nil},
		{"empty name", []string{"read", "", "write"}, []string{"read", "write"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.GetScopes(ctx, tt.names)
			if err != nil {
				t.Fatalf("GetScopes() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("GetScopes() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i].Name != tt.want[i] {
					t.Errorf("GetScopes()[%d] = %v, want %v", i, got[i].Name, tt.want[i])
				}
			}
		})
	}
}

func testScopeValidation(t *testing.T, s core.Store) {
	ctx := context.Background()

	tests := []struct {
		name    string
		scope   *core.Scope
		wantErr error
	}{
		{"nil scope", nil, ErrNilScope},
		{"empty name", &core.Scope{}, ErrEmptyScopeName},
		{"name with space", &core.Scope{Name: "read write"}, ErrInvalidScopeName},
		{"name with tab", &core.Scope{Name: "read\t"}, ErrInvalidScopeName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.CreateScope(ctx, tt.scope); !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateScope() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
