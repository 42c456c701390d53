package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/go-training/oauth-authorize/pkg/core"
)

// MemoryStore implements the core.Store interface using in-memory maps.
// It provides thread-safe storage for clients and scopes. Clients are copied
// on the way in and out, so callers never share state with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	clients map[string]*core.Client
	scopes  map[string]core.Scope
}

// NewMemoryStore creates a new instance of MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		clients: make(map[string]*core.Client),
		scopes:  make(map[string]core.Scope),
	}
}

// GetClient retrieves a client from memory by its client ID.
// It returns ErrClientNotFound if the client does not exist.
func (m *MemoryStore) GetClient(ctx context.Context, clientID string) (*core.Client, error) {
	if clientID == "" {
		return nil, ErrEmptyClientID
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	client, exists := m.clients[clientID]
	if !exists {
		return nil, ErrClientNotFound
	}

	return cloneClient(client), nil
}

// ListClients returns all clients ordered by ID.
func (m *MemoryStore) ListClients(ctx context.Context) ([]*core.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	clients := make([]*core.Client, 0, len(m.clients))
	for _, c := range m.clients {
		clients = append(clients, cloneClient(c))
	}
	slices.SortFunc(clients, func(a, b *core.Client) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return clients, nil
}

// CreateClient stores a new client in memory.
// It returns ErrClientExists if the ID is already registered.
func (m *MemoryStore) CreateClient(ctx context.Context, client *core.Client) error {
	if err := validateClient(client); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.clients[client.ID]; exists {
		return ErrClientExists
	}

	now := time.Now().Unix()
	stored := cloneClient(client)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.clients[client.ID] = stored
	return nil
}

// UpdateClient replaces an existing client, keeping its creation time.
// It returns ErrClientNotFound if the client does not exist.
func (m *MemoryStore) UpdateClient(ctx context.Context, client *core.Client) error {
	if err := validateClient(client); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, exists := m.clients[client.ID]
	if !exists {
		return ErrClientNotFound
	}

	stored := cloneClient(client)
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now().Unix()
	m.clients[client.ID] = stored
	return nil
}

// DeleteClient removes a client from memory by its client ID.
// It returns ErrClientNotFound if the client does not exist.
func (m *MemoryStore) DeleteClient(ctx context.Context, clientID string) error {
	if clientID == "" {
		return ErrEmptyClientID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.clients[clientID]; !exists {
		return ErrClientNotFound
	}

	delete(m.clients, clientID)
	return nil
}

// GetScopes returns the registered scopes among names, in the order asked.
func (m *MemoryStore) GetScopes(ctx context.Context, names []string) ([]core.Scope, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	found := make([]core.Scope, 0, len(names))
	for _, name := range names {
		if s, ok := m.scopes[name]; ok {
			found = append(found, s)
		}
	}
	return found, nil
}

// ListScopes returns all scopes ordered by name.
func (m *MemoryStore) ListScopes(ctx context.Context) ([]core.Scope, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	scopes := make([]core.Scope, 0, len(m.scopes))
	for _, s := range m.scopes {
		scopes = append(scopes, s)
	}
	slices.SortFunc(scopes, func(a, b core.Scope) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return scopes, nil
}

// CreateScope registers a new scope.
func (m *MemoryStore) CreateScope(ctx context.Context, scope *core.Scope) error {
	if err := validateScope(scope); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.scopes[scope.Name]; exists {
		return ErrScopeExists
	}
	m.scopes[scope.Name] = *scope
	return nil
}

// UpdateScope replaces an existing scope.
func (m *MemoryStore) UpdateScope(ctx context.Context, scope *core.Scope) error {
	if err := validateScope(scope); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.scopes[scope.Name]; !exists {
		return ErrScopeNotFound
	}
	m.scopes[scope.Name] = *scope
	return nil
}

// DeleteScope removes a scope by name.
func (m *MemoryStore) DeleteScope(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptyScopeName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.scopes[name]; !exists {
		return ErrScopeNotFound
	}
	delete(m.scopes, name)
	return nil
}

// Close is a no-op for the memory store.
func (m *MemoryStore) Close() error {
	return nil
}
