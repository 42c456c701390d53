package endpoint

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/go-training/oauth-authorize/pkg/core"
	"github.com/go-training/oauth-authorize/pkg/store"
)

type clientRequest struct {
	ID           string   `json:"client_id"`
	Name         string   `json:"client_name" binding:"required"`
	Description  string   `json:"description"`
	Type         string   `json:"client_type" binding:"required,oneof=public confidential"`
	RedirectURIs []string `json:"redirect_uris" binding:"required,min=1,dive,url"`
	Secret       string   `json:"client_secret"`
}

type scopeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// clientView hides the secret. The secret is only returned when a client
// is created.
func clientView(c *core.Client) *core.Client {
	cp := *c
	cp.Secret = ""
	return &cp
}

func (h *handler) listClients(c *gin.Context) {
	clients, err := h.store.ListClients(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	views := make([]*core.Client, 0, len(clients))
	for _, client := range clients {
		views = append(views, clientView(client))
	}
	c.JSON(http.StatusOK, views)
}

func (h *handler) getClient(c *gin.Context) {
	client, err := h.store.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, clientView(client))
}

func (h *handler) createClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client := &core.Client{
		ID:           req.ID,
		Name:         req.Name,
		Description:  req.Description,
		Type:         core.ClientType(req.Type),
		RedirectURIs: req.RedirectURIs,
	}
	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	if client.IsConfidential() {
		client.Secret = req.Secret
		if client.Secret == "" {
			client.Secret = generateClientSecret()
		}
	}

	if err := h.store.CreateClient(c.Request.Context(), client); err != nil {
		h.storeError(c, err)
		return
	}

	created, err := h.store.GetClient(c.Request.Context(), client.ID)
	if err != nil {
		h.storeError(c, err)
		return
	}

	core.LoggerFromCtx(c.Request.Context()).Info("client registered",
		"client_id", created.ID,
		"client_type", created.Type,
	)
	c.JSON(http.StatusCreated, created)
}

func (h *handler) updateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id := c.Param("id")
	if req.ID != "" && req.ID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client_id does not match the path"})
		return
	}

	existing, err := h.store.GetClient(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}

	client := &core.Client{
		ID:           id,
		Name:         req.Name,
		Description:  req.Description,
		Type:         core.ClientType(req.Type),
		RedirectURIs: req.RedirectURIs,
	}
	if client.IsConfidential() {
		client.Secret = req.Secret
		if client.Secret == "" {
			client.Secret = existing.Secret
		}
		if client.Secret == "" {
			client.Secret = generateClientSecret()
		}
	}

	if err := h.store.UpdateClient(c.Request.Context(), client); err != nil {
		h.storeError(c, err)
		return
	}
	updated, err := h.store.GetClient(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, clientView(updated))
}

func (h *handler) deleteClient(c *gin.Context) {
	if err := h.store.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		h.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) listScopes(c *gin.Context) {
	scopes, err := h.store.ListScopes(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, scopes)
}

func (h *handler) getScope(c *gin.Context) {
	scopes, err := h.store.GetScopes(c.Request.Context(), []string{c.Param("name")})
	if err != nil {
		h.storeError(c, err)
		return
	}
	if len(scopes) == 0 {
		h.storeError(c, store.ErrScopeNotFound)
		return
	}
	c.JSON(http.StatusOK, scopes[0])
}

func (h *handler) createScope(c *gin.Context) {
	var req scopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scope := &core.Scope{Name: req.Name, Description: req.Description}
	if err := h.store.CreateScope(c.Request.Context(), scope); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, scope)
}

func (h *handler) updateScope(c *gin.Context) {
	var req scopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := c.Param("name")
	if req.Name != "" && req.Name != name {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name does not match the path"})
		return
	}

	scope := &core.Scope{Name: name, Description: req.Description}
	if err := h.store.UpdateScope(c.Request.Context(), scope); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, scope)
}

func (h *handler) deleteScope(c *gin.Context) {
	if err := h.store.DeleteScope(c.Request.Context(), c.Param("name")); err != nil {
		h.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// storeError maps store errors onto HTTP status codes.
func (h *handler) storeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrClientNotFound), errors.Is(err, store.ErrScopeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrClientExists), errors.Is(err, store.ErrScopeExists):
		status = http.StatusConflict
	case errors.Is(err, store.ErrNilClient),
		errors.Is(err, store.ErrEmptyClientID),
		errors.Is(err, store.ErrInvalidClientType),
		errors.Is(err, store.ErrInvalidRedirectURI),
		errors.Is(err, store.ErrNilScope),
		errors.Is(err, store.ErrEmptyScopeName),
		errors.Is(err, store.ErrInvalidScopeName):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		core.LoggerFromCtx(c.Request.Context()).Error("store operation failed", "error", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func generateClientSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
