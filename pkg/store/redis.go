package store

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/redis/rueidis"

	"github.com/go-training/oauth-authorize/pkg/core"
)

const (
	// Key names, relative to the configured prefix.
	clientPrefix  = "client:"
	clientIndex   = "clients"
	scopeHashName = "scopes"

	// Clients change rarely; cache them client-side.
	clientCacheTTL = 60 * time.Second
)

// RedisStore implements the core.Store interface using Redis via rueidis.
// Clients are stored as JSON strings under client:<id> and indexed in the
// clients set; scopes live in a single hash of name to JSON.
type RedisStore struct {
	client rueidis.Client
	prefix string
}

// NewRedisStore creates a RedisStore on an existing rueidis client. Every
// key is prefixed with keyPrefix, which may be empty.
func NewRedisStore(client rueidis.Client, keyPrefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: keyPrefix,
	}
}

// RedisOptions contains configuration for Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// KeyPrefix namespaces every key, e.g. "authz:".
	KeyPrefix string
	// DisableCache turns off client-side caching, for servers without
	// CLIENT TRACKING support.
	DisableCache bool
}

// NewRedisStoreFromOptions creates a new RedisStore with simplified options.
func NewRedisStoreFromOptions(opts RedisOptions) (*RedisStore, error) {
	clientOpts := rueidis.ClientOption{
		InitAddress:  []string{opts.Addr},
		Password:     opts.Password,
		SelectDB:     opts.DB,
		DisableCache: opts.DisableCache,
	}
	return NewRedisStoreFromClientOption(clientOpts, opts.KeyPrefix)
}

// NewRedisStoreFromClientOption creates a new RedisStore with full rueidis client options.
func NewRedisStoreFromClientOption(opts rueidis.ClientOption, keyPrefix string) (*RedisStore, error) {
	client, err := rueidis.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	return NewRedisStore(client, keyPrefix), nil
}

// Close closes the Redis client connection.
func (r *RedisStore) Close() error {
	r.client.Close()
	return nil
}

// Ping checks Redis connectivity.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Do(ctx, r.client.B().Ping().Build()).Error()
}

func (r *RedisStore) clientKey(id string) string {
	return r.prefix + clientPrefix + id
}

func (r *RedisStore) indexKey() string {
	return r.prefix + clientIndex
}

func (r *RedisStore) scopesKey() string {
	return r.prefix + scopeHashName
}

// GetClient retrieves a client from Redis by its client ID.
// It returns ErrClientNotFound if the client does not exist.
func (r *RedisStore) GetClient(ctx context.Context, clientID string) (*core.Client, error) {
	if clientID == "" {
		return nil, ErrEmptyClientID
	}

	cmd := r.client.B().Get().Key(r.clientKey(clientID)).Cache()
	result, err := r.client.DoCache(ctx, cmd, clientCacheTTL).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client from redis: %w", err)
	}

	var client core.Client
	if err := json.Unmarshal([]byte(result), &client); err != nil {
		return nil, fmt.Errorf("failed to unmarshal client: %w", err)
	}

	return &client, nil
}

// ListClients returns all indexed clients ordered by ID. Index entries
// whose client key is gone are skipped.
func (r *RedisStore) ListClients(ctx context.Context) ([]*core.Client, error) {
	ids, err := r.client.Do(ctx, r.client.B().Smembers().Key(r.indexKey()).Build()).AsStrSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to list client ids from redis: %w", err)
	}

	clients := make([]*core.Client, 0, len(ids))
	if len(ids) == 0 {
		return clients, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.clientKey(id)
	}
	values, err := r.client.Do(ctx, r.client.B().Mget().Key(keys...).Build()).ToArray()
	if err != nil {
		return nil, fmt.Errorf("failed to get clients from redis: %w", err)
	}

	for _, v := range values {
		data, err := v.ToString()
		if rueidis.IsRedisNil(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read client from redis: %w", err)
		}
		var client core.Client
		if err := json.Unmarshal([]byte(data), &client); err != nil {
			return nil, fmt.Errorf("failed to unmarshal client: %w", err)
		}
		clients = append(clients, &client)
	}

	slices.SortFunc(clients, func(a, b *core.Client) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return clients, nil
}

// CreateClient stores a new client in Redis.
// It returns ErrClientExists if the ID is already registered.
func (r *RedisStore) CreateClient(ctx context.Context, client *core.Client) error {
	if err := validateClient(client); err != nil {
		return err
	}

	now := time.Now().Unix()
	stored := cloneClient(client)
	stored.CreatedAt = now
	stored.UpdatedAt = now

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal client: %w", err)
	}

	cmd := r.client.B().Set().Key(r.clientKey(client.ID)).Value(string(data)).Nx().Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return ErrClientExists
		}
		return fmt.Errorf("failed to create client in redis: %w", err)
	}

	index := r.client.B().Sadd().Key(r.indexKey()).Member(client.ID).Build()
	if err := r.client.Do(ctx, index).Error(); err != nil {
		return fmt.Errorf("failed to index client in redis: %w", err)
	}

	return nil
}

// UpdateClient updates an existing client in Redis, keeping its creation time.
// It returns ErrClientNotFound if the client does not exist.
func (r *RedisStore) UpdateClient(ctx context.Context, client *core.Client) error {
	if err := validateClient(client); err != nil {
		return err
	}

	key := r.clientKey(client.ID)
	current, err := r.client.Do(ctx, r.client.B().Get().Key(key).Build()).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to get client from redis: %w", err)
	}
	var existing core.Client
	if err := json.Unmarshal([]byte(current), &existing); err != nil {
		return fmt.Errorf("failed to unmarshal client: %w", err)
	}

	stored := cloneClient(client)
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now().Unix()

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal client: %w", err)
	}

	// XX so a concurrent delete is not resurrected.
	cmd := r.client.B().Set().Key(key).Value(string(data)).Xx().Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to update client in redis: %w", err)
	}

	return nil
}

// DeleteClient removes a client from Redis by its client ID.
// It returns ErrClientNotFound if the client does not exist.
func (r *RedisStore) DeleteClient(ctx context.Context, clientID string) error {
	if clientID == "" {
		return ErrEmptyClientID
	}

	results := r.client.DoMulti(ctx,
		r.client.B().Del().Key(r.clientKey(clientID)).Build(),
		r.client.B().Srem().Key(r.indexKey()).Member(clientID).Build(),
	)
	deleted, err := results[0].AsInt64()
	if err != nil {
		return fmt.Errorf("failed to delete client from redis: %w", err)
	}
	if err := results[1].Error(); err != nil {
		return fmt.Errorf("failed to unindex client in redis: %w", err)
	}

	if deleted == 0 {
		return ErrClientNotFound
	}

	return nil
}

// GetScopes returns the registered scopes among names, in the order asked.
func (r *RedisStore) GetScopes(ctx context.Context, names []string) ([]core.Scope, error) {
	found := make([]core.Scope, 0, len(names))
	if len(names) == 0 {
		return found, nil
	}

	cmd := r.client.B().Hmget().Key(r.scopesKey()).Field(names...).Build()
	values, err := r.client.Do(ctx, cmd).ToArray()
	if err != nil {
		return nil, fmt.Errorf("failed to get scopes from redis: %w", err)
	}

	for _, v := range values {
		data, err := v.ToString()
		if rueidis.IsRedisNil(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read scope from redis: %w", err)
		}
		var scope core.Scope
		if err := json.Unmarshal([]byte(data), &scope); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scope: %w", err)
		}
		found = append(found, scope)
	}
	return found, nil
}

// ListScopes returns all scopes ordered by name.
func (r *RedisStore) ListScopes(ctx context.Context) ([]core.Scope, error) {
	all, err := r.client.Do(ctx, r.client.B().Hgetall().Key(r.scopesKey()).Build()).AsStrMap()
	if err != nil {
		return nil, fmt.Errorf("failed to list scopes from redis: %w", err)
	}

	scopes := make([]core.Scope, 0, len(all))
	for _, data := range all {
		var scope core.Scope
		if err := json.Unmarshal([]byte(data), &scope); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scope: %w", err)
		}
		scopes = append(scopes, scope)
	}
	slices.SortFunc(scopes, func(a, b core.Scope) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return scopes, nil
}

// CreateScope registers a new scope.
func (r *RedisStore) CreateScope(ctx context.Context, scope *core.Scope) error {
	if err := validateScope(scope); err != nil {
		return err
	}

	data, err := json.Marshal(scope)
	if err != nil {
		return fmt.Errorf("failed to marshal scope: %w", err)
	}

	cmd := r.client.B().Hsetnx().Key(r.scopesKey()).Field(scope.Name).Value(string(data)).Build()
	set, err := r.client.Do(ctx, cmd).AsInt64()
	if err != nil {
		return fmt.Errorf("failed to create scope in redis: %w", err)
	}
	if set == 0 {
		return ErrScopeExists
	}
	return nil
}

// UpdateScope replaces an existing scope.
func (r *RedisStore) UpdateScope(ctx context.Context, scope *core.Scope) error {
	if err := validateScope(scope); err != nil {
		return err
	}

	existsCmd := r.client.B().Hexists().Key(r.scopesKey()).Field(scope.Name).Build()
	exists, err := r.client.Do(ctx, existsCmd).AsInt64()
	if err != nil {
		return fmt.Errorf("failed to check scope existence in redis: %w", err)
	}
	if exists == 0 {
		return ErrScopeNotFound
	}

	data, err := json.Marshal(scope)
	if err != nil {
		return fmt.Errorf("failed to marshal scope: %w", err)
	}

	cmd := r.client.B().Hset().Key(r.scopesKey()).FieldValue().FieldValue(scope.Name, string(data)).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to update scope in redis: %w", err)
	}
	return nil
}

// DeleteScope removes a scope by name.
func (r *RedisStore) DeleteScope(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptyScopeName
	}

	cmd := r.client.B().Hdel().Key(r.scopesKey()).Field(name).Build()
	deleted, err := r.client.Do(ctx, cmd).AsInt64()
	if err != nil {
		return fmt.Errorf("failed to delete scope from redis: %w", err)
	}
	if deleted == 0 {
		return ErrScopeNotFound
	}
	return nil
}
