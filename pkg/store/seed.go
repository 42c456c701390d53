package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-training/oauth-authorize/pkg/core"
)

// Seed lists the clients and scopes registered at startup.
type Seed struct {
	Clients []core.Client `yaml:"clients"`
	Scopes  []core.Scope  `yaml:"scopes"`
}

// DefaultSeed returns the development registration: one confidential
// client and the read scope.
func DefaultSeed() *Seed {
	return &Seed{
		Clients: []core.Client{
			{
				ID:           "client1",
				Name:         "client1",
				Description:  "client1",
				Type:         core.ClientTypeConfidential,
				Secret:       "secret",
				RedirectURIs: []string{"https://localhost:4000"},
			},
		},
		Scopes: []core.Scope{
			{Name: "read", Description: "read"},
		},
	}
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	for i := range seed.Clients {
		t, err := core.ParseClientType(string(seed.Clients[i].Type))
		if err != nil {
			return nil, fmt.Errorf("client %q: %w", seed.Clients[i].ID, err)
		}
		seed.Clients[i].Type = t
	}
	return &seed, nil
}

// LoadSeed reads and decodes the YAML seed file at path.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ApplySeed registers every scope and client in seed. Entries that already
// exist are updated, so applying the same seed twice is harmless.
func ApplySeed(ctx context.Context, s core.Store, seed *Seed) error {
	if seed == nil {
		return nil
	}

	for i := range seed.Scopes {
		scope := &seed.Scopes[i]
		err := s.CreateScope(ctx, scope)
		if errors.Is(err, ErrScopeExists) {
			err = s.UpdateScope(ctx, scope)
		}
		if err != nil {
			return fmt.Errorf("seed scope %q: %w", scope.Name, err)
		}
	}

	for i := range seed.Clients {
		client := &seed.Clients[i]
		err := s.CreateClient(ctx, client)
		if errors.Is(err, ErrClientExists) {
			err = s.UpdateClient(ctx, client)
		}
		if err != nil {
			return fmt.Errorf("seed client %q: %w", client.ID, err)
		}
	}

	core.LoggerFromCtx(ctx).Info("seed applied",
		"clients", len(seed.Clients),
		"scopes", len(seed.Scopes),
	)
	return nil
}
