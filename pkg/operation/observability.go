package operation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-training/oauth-authorize/pkg/core"
)

/*
AddRequestAttributes sets attributes on the current trace span, and if no active span,
logs the attributes via slog for observability fallback. Also logs trace/span id for correlation.
*/
func AddRequestAttributes(ctx context.Context, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(attrs...)
		return
	}

	logAttrs := make([]slog.Attr, 0, len(attrs)+3)
	for _, attr := range attrs {
		logAttrs = append(logAttrs, slog.Any(string(attr.Key), attr.Value.AsInterface()))
	}
	logAttrs = append(logAttrs, slog.Bool("observability.fallback", true))
	if sc := span.SpanContext(); sc.HasTraceID() {
		logAttrs = append(logAttrs,
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	core.LoggerFromCtx(ctx).LogAttrs(ctx, slog.LevelDebug, "mcp request attributes", logAttrs...)
}

// MCPToolHandlerMiddleware records the tool name, arguments, outcome and
// duration of every tool call on the active span.
func MCPToolHandlerMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			AddRequestAttributes(
				ctx,
				attribute.String("mcp.tool", req.Params.Name),
				attribute.String("mcp.params", fmt.Sprintf("%+v", req.GetArguments())),
			)

			res, err := next(ctx, req)
			durationMs := float64(time.Since(start).Microseconds()) / 1000.0

			status := "ok"
			var errMsg string
			if err != nil {
				status = "error"
				errMsg = err.Error()
			} else if res != nil && res.IsError {
				status = "error"
				errMsg = toolErrorText(res)
			}
			attrs := []attribute.KeyValue{
				attribute.String("mcp.status", status),
				attribute.Float64("mcp.duration_ms", durationMs),
			}
			if errMsg != "" {
				attrs = append(attrs, attribute.String("mcp.error", errMsg))
			}
			AddRequestAttributes(ctx, attrs...)

			return res, err
		}
	}
}

func toolErrorText(res *mcp.CallToolResult) string {
	if len(res.Content) == 0 {
		return "unknown error with no content"
	}
	if txt, ok := res.Content[0].(mcp.TextContent); ok {
		return txt.Text
	}
	return fmt.Sprintf("unknown error with content type %T", res.Content[0])
}
