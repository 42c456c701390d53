package endpoint

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	sloggin "github.com/gin-contrib/slog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/go-training/oauth-authorize/pkg/core"
)

// HeaderRequestID carries the request ID in both directions.
const HeaderRequestID = "X-Request-ID"

// requestIDMiddleware puts a request ID on the request context, reusing a
// well-formed incoming X-Request-ID.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(reqID); err != nil {
			reqID = uuid.New().String()
		}
		c.Request = c.Request.WithContext(core.WithRequestIDValue(c.Request.Context(), reqID))
		c.Header(HeaderRequestID, reqID)
		c.Next()
	}
}

// accessLogMiddleware writes one line per request through the default
// slog logger, tagged with the request ID.
func accessLogMiddleware() gin.HandlerFunc {
	return sloggin.SetLogger(
		sloggin.WithLogger(func(c *gin.Context, _ *slog.Logger) *slog.Logger {
			return core.LoggerFromCtx(c.Request.Context())
		}),
		sloggin.WithSkipPath([]string{"/healthz"}),
	)
}

// corsMiddleware is an optimized CORS handler for Gin.
// It merges allowed headers with defaults, sets standard options, and can be further customized.
func corsMiddleware(allowedHeaders ...string) gin.HandlerFunc {
	headers := []string{"Mcp-Protocol-Version", "Authorization", "Content-Type"}
	for _, h := range allowedHeaders {
		h = strings.TrimSpace(h)
		if h != "" && h != "*" && !containsCI(headers, h) {
			headers = append(headers, h)
		}
	}
	allowHeaders := strings.Join(headers, ", ")

	allowedMethods := []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	return func(c *gin.Context) {
		// For production, set allowlist for origins here; demo fallback is *
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Vary", "Origin")
		c.Header("Access-Control-Allow-Methods", strings.Join(allowedMethods, ", "))
		c.Header("Access-Control-Allow-Headers", allowHeaders)
		c.Header("Access-Control-Max-Age", "86400")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// bearerAuthMiddleware aborts with 401 unless the Authorization header
// carries token. An empty token disables the check.
func bearerAuthMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}
		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.Header("WWW-Authenticate", `Bearer realm="admin"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// containsCI checks if slice contains item (case-insensitive).
func containsCI(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
