// Package endpoint exposes authorization request validation over HTTP.
package endpoint

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/client/transport"

	"github.com/go-training/oauth-authorize/pkg/authorize"
	"github.com/go-training/oauth-authorize/pkg/core"
)

// Options wires the router to its collaborators.
type Options struct {
	Service *authorize.Service
	Store   core.Store
	// Issuer is the externally visible base URL, e.g. https://auth.example.
	Issuer string
	// AdminToken, when set, is required as a bearer token on /admin.
	AdminToken string
	// MCP, when set, is mounted at /mcp.
	MCP http.Handler
}

type handler struct {
	service *authorize.Service
	store   core.Store
	issuer  string
}

// NewRouter builds the gin engine serving /authorize, server metadata,
// the admin API and health checks.
func NewRouter(opts Options) *gin.Engine {
	if opts.Service == nil || opts.Store == nil {
		panic("endpoint: NewRouter requires a service and a store")
	}

	h := &handler{
		service: opts.Service,
		store:   opts.Store,
		issuer:  strings.TrimSuffix(opts.Issuer, "/"),
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestIDMiddleware(), accessLogMiddleware())
	r.SetHTMLTemplate(errorTemplate)

	r.GET("/healthz", h.healthz)

	r.GET("/.well-known/oauth-authorization-server", corsMiddleware(), h.metadata)
	r.OPTIONS("/.well-known/oauth-authorization-server", corsMiddleware())

	r.GET("/authorize", h.authorize)
	r.POST("/authorize", h.authorize)

	admin := r.Group("/admin", corsMiddleware(), bearerAuthMiddleware(opts.AdminToken))
	admin.GET("/clients", h.listClients)
	admin.POST("/clients", h.createClient)
	admin.GET("/clients/:id", h.getClient)
	admin.PUT("/clients/:id", h.updateClient)
	admin.DELETE("/clients/:id", h.deleteClient)
	admin.GET("/scopes", h.listScopes)
	admin.POST("/scopes", h.createScope)
	admin.GET("/scopes/:name", h.getScope)
	admin.PUT("/scopes/:name", h.updateScope)
	admin.DELETE("/scopes/:name", h.deleteScope)
	r.OPTIONS("/admin/*path", corsMiddleware())

	if opts.MCP != nil {
		// Register POST, GET, DELETE methods for the /mcp path
		for _, method := range []string{http.MethodPost, http.MethodGet, http.MethodDelete} {
			r.Handle(method, "/mcp", corsMiddleware(), gin.WrapH(opts.MCP))
		}
		r.OPTIONS("/mcp", corsMiddleware())
	}

	return r
}

func (h *handler) metadata(c *gin.Context) {
	scopes, err := h.store.ListScopes(c.Request.Context())
	if err != nil {
		core.LoggerFromCtx(c.Request.Context()).Error("failed to list scopes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list scopes"})
		return
	}

	names := make([]string, 0, len(scopes))
	for _, s := range scopes {
		names = append(names, s.Name)
	}

	c.JSON(http.StatusOK, transport.AuthServerMetadata{
		Issuer:                 h.issuer,
		AuthorizationEndpoint:  h.issuer + "/authorize",
		ScopesSupported:        names,
		ResponseTypesSupported: core.SupportedResponseTypes(),
	})
}

type pinger interface {
	Ping(ctx context.Context) error
}

func (h *handler) healthz(c *gin.Context) {
	if p, ok := h.store.(pinger); ok {
		if err := p.Ping(c.Request.Context()); err != nil {
			core.LoggerFromCtx(c.Request.Context()).Warn("store ping failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
