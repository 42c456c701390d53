package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
)

// callerHandler adds the source location of the log call as a "caller"
// attribute.
type callerHandler struct {
	slog.Handler
}

// trimPathDepth keeps only the last n segments of the given path.
// Example: trimPathDepth("a/b/c/d.go", 3) => "b/c/d.go"
func trimPathDepth(path string, depth int) string {
	parts := strings.Split(path, string(os.PathSeparator))
	if len(parts) <= depth {
		return path
	}
	return strings.Join(parts[len(parts)-depth:], string(os.PathSeparator))
}

func (h *callerHandler) Handle(ctx context.Context, r slog.Record) error {
	// Skip 3 stack frames to get the actual caller of the log function
	_, file, line, ok := runtime.Caller(3)
	caller := ""
	if ok {
		// Always show only the last 3 segments of the file path for readability
		relPath := trimPathDepth(file, 3)
		caller = fmt.Sprintf("%s:%d", relPath, line)
	} else {
		caller = "unknown"
	}
	r.AddAttrs(slog.String("caller", caller))
	return h.Handler.Handle(ctx, r)
}

// WithAttrs keeps the caller annotation on loggers derived with With,
// such as the request-scoped ones.
func (h *callerHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &callerHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *callerHandler) WithGroup(name string) slog.Handler {
	return &callerHandler{Handler: h.Handler.WithGroup(name)}
}

// ParseLevel maps DEBUG, INFO, WARN and ERROR (any case) to a slog level.
// The second return is false for anything else.
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

func newHandler(w io.Writer, level string, production bool) slog.Handler {
	lvl := slog.LevelDebug
	if production {
		lvl = slog.LevelInfo
	}
	if parsed, ok := ParseLevel(level); ok {
		lvl = parsed
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: lvl}
	if production {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	// Wrap with callerHandler to inject caller info
	return &callerHandler{Handler: handler}
}

// New initializes the default logger for the application.
// It uses text format and DEBUG level for development, JSON and INFO for production.
func New() *slog.Logger {
	return NewWithLevel("")
}

// NewWithLevel is New with an explicit level. An empty or unknown level
// keeps the environment default.
func NewWithLevel(level string) *slog.Logger {
	handler := newHandler(os.Stdout, level, os.Getenv("ENV") == "production")
	slog.SetDefault(slog.New(handler))
	return slog.Default()
}
