// Package main runs the OAuth 2.0 authorization request validation server.
//
// It serves /authorize, the authorization server metadata document, an
// admin API for clients and scopes, and an MCP endpoint at /mcp.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/appleboy/graceful"
	"github.com/gin-gonic/gin"

	"github.com/go-training/oauth-authorize/pkg/authorize"
	"github.com/go-training/oauth-authorize/pkg/config"
	"github.com/go-training/oauth-authorize/pkg/endpoint"
	"github.com/go-training/oauth-authorize/pkg/logger"
	"github.com/go-training/oauth-authorize/pkg/operation"
	"github.com/go-training/oauth-authorize/pkg/store"
	"github.com/go-training/oauth-authorize/pkg/validator"
)

const (
	serverName    = "oauth-authorize"
	serverVersion = "1.0.0"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger.NewWithLevel(cfg.LogLevel)
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	storeConfig := cfg.StoreConfig()
	storeConfig.Seed, err = startupSeed(cfg)
	if err != nil {
		slog.Error("Failed to load seed", "file", cfg.SeedFile, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := store.NewStore(ctx, storeConfig)
	cancel()
	if err != nil {
		slog.Error("Failed to create store", "store", cfg.StoreType(), "error", err)
		os.Exit(1)
	}

	svc := authorize.NewService(validator.New(st, st))
	mcpServer := operation.NewMCPServer(serverName, serverVersion, svc)

	router := endpoint.NewRouter(endpoint.Options{
		Service:    svc,
		Store:      st,
		Issuer:     cfg.Issuer,
		AdminToken: cfg.AdminToken,
		MCP:        operation.NewHTTPHandler(mcpServer, st),
	})
	if cfg.AdminToken == "" {
		slog.Warn("Admin API is not protected; set -admin-token to require a bearer token")
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		slog.Error("Failed to listen", "addr", cfg.Addr, "error", err)
		_ = st.Close()
		os.Exit(1)
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	m := graceful.NewManager()
	m.AddRunningJob(func(ctx context.Context) error {
		slog.Info("Authorize server listening",
			"addr", ln.Addr().String(),
			"issuer", cfg.Issuer,
			"store", cfg.StoreType(),
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			return err
		}
		return nil
	})
	m.AddShutdownJob(func() error {
		slog.Info("Shutdown signal received, shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("Server forced to shutdown", "error", err)
		}
		return st.Close()
	})

	<-m.Done()
	slog.Info("Server shutdown gracefully")
}

// startupSeed returns the configured seed file. Without one, a memory
// store gets the development seed so the server is usable out of the box.
func startupSeed(cfg *config.Config) (*store.Seed, error) {
	switch {
	case cfg.SeedFile != "":
		return store.LoadSeed(cfg.SeedFile)
	case cfg.StoreType() == store.StoreTypeMemory:
		return store.DefaultSeed(), nil
	default:
		return nil, nil
	}
}
