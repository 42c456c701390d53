package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// RequestIDKey is a custom context key type for storing the request ID in context.
type RequestIDKey struct{}

// StoreKey is a custom context key type for storing the Store in context.
type StoreKey struct{}

// WithRequestID returns a new context with a generated request ID set.
func WithRequestID(ctx context.Context) context.Context {
	return WithRequestIDValue(ctx, uuid.New().String())
}

// WithRequestIDValue returns a new context carrying the given request ID.
func WithRequestIDValue(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, RequestIDKey{}, reqID)
}

// RequestIDFromContext returns the request ID, or "" when none is set.
func RequestIDFromContext(ctx context.Context) string {
	reqID, _ := ctx.Value(RequestIDKey{}).(string)
	return reqID
}

// LoggerFromCtx returns a slog.Logger with request_id field if present in context.
// If no request ID is found, it returns the default logger.
func LoggerFromCtx(ctx context.Context) *slog.Logger {
	if reqID := RequestIDFromContext(ctx); reqID != "" {
		return slog.Default().With("request_id", reqID)
	}
	return slog.Default()
}

// WithStore returns a new context with the provided Store set.
func WithStore(ctx context.Context, store Store) context.Context {
	return context.WithValue(ctx, StoreKey{}, store)
}

// StoreFromContext retrieves the Store from the context.
func StoreFromContext(ctx context.Context) (Store, error) {
	store, ok := ctx.Value(StoreKey{}).(Store)
	if !ok {
		return nil, fmt.Errorf("missing store")
	}
	return store, nil
}
