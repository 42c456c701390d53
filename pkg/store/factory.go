package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-training/oauth-authorize/pkg/core"
)

// StoreType names a store backend.
type StoreType string

const (
	// StoreTypeMemory keeps registrations in process memory.
	StoreTypeMemory StoreType = "memory"
	// StoreTypeRedis keeps registrations in Redis.
	StoreTypeRedis StoreType = "redis"
)

// Config selects and configures the store backend.
type Config struct {
	Type  StoreType
	Redis RedisOptions
	// Seed, when set, is registered as soon as the store is opened.
	Seed *Seed
}

// Factory opens stores from a Config.
type Factory struct {
	config Config
}

// NewFactory returns a factory for config.
func NewFactory(config Config) *Factory {
	return &Factory{config: config}
}

// Create opens the configured backend and applies the seed. A store whose
// seed fails is closed before the error is returned.
func (f *Factory) Create(ctx context.Context) (core.Store, error) {
	s, err := f.open()
	if err != nil {
		return nil, err
	}
	if f.config.Seed == nil {
		return s, nil
	}
	if err := ApplySeed(ctx, s, f.config.Seed); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("seed %s store: %w", f.config.Type, err)
	}
	return s, nil
}

func (f *Factory) open() (core.Store, error) {
	switch f.config.Type {
	case StoreTypeMemory:
		return NewMemoryStore(), nil
	case StoreTypeRedis:
		s, err := NewRedisStoreFromOptions(f.config.Redis)
		if err != nil {
			// Return an untyped nil, not a nil *RedisStore.
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported store type: %q", f.config.Type)
	}
}

// NewStore is NewFactory(config).Create(ctx).
func NewStore(ctx context.Context, config Config) (core.Store, error) {
	return NewFactory(config).Create(ctx)
}

// MustCreate is NewStore that panics on error.
func MustCreate(ctx context.Context, config Config) core.Store {
	s, err := NewStore(ctx, config)
	if err != nil {
		panic(fmt.Sprintf("failed to create store: %v", err))
	}
	return s
}

// ParseStoreType parses s case-insensitively. Anything other than "redis"
// selects the memory store.
func ParseStoreType(s string) StoreType {
	if strings.EqualFold(strings.TrimSpace(s), string(StoreTypeRedis)) {
		return StoreTypeRedis
	}
	return StoreTypeMemory
}

// String returns the string representation of a StoreType.
func (t StoreType) String() string {
	return string(t)
}

// IsValid reports whether t names a supported backend.
func (t StoreType) IsValid() bool {
	return t == StoreTypeMemory || t == StoreTypeRedis
}

// DefaultConfig is an unseeded memory store.
func DefaultConfig() Config {
	return Config{Type: StoreTypeMemory}
}
