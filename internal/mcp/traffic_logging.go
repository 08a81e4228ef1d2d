package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// maxLoggedPayload caps each logged params or result body. Hierarchy and
// calendar results run to tens of kilobytes.
const maxLoggedPayload = 4096

// trafficLoggingMiddleware logs every request and its response at debug
// level, tagged with the viewer and, for tool calls, the tool name.
func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			attrs := []any{"direction", direction, "method", method, "session_id", sessionIDOf(req)}
			if viewer, err := viewerFrom(ctx); err == nil {
				attrs = append(attrs, "user", viewer.Username, "role", viewer.Role)
			}
			params := paramsOf(req)
			if call, ok := params.(*sdkmcp.CallToolParamsRaw); ok && call != nil {
				attrs = append(attrs, "tool", call.Name)
			}
			attrs = slices.Clip(attrs)
			logger.Debug("mcp traffic", append(attrs, "stage", "request", "params", formatPayload(params))...)

			start := time.Now()
			result, err := next(ctx, method, req)
			if strings.HasPrefix(method, "notifications/") {
				return result, err
			}

			resp := append(attrs, "stage", "response", "duration", time.Since(start), "result", formatPayload(result))
			if toolResult, ok := result.(*sdkmcp.CallToolResult); ok && toolResult != nil && toolResult.IsError {
				resp = append(resp, "tool_error", true)
			}
			if err != nil {
				resp = append(resp, "error", err)
			}
			logger.Debug("mcp traffic", resp...)
			return result, err
		}
	}
}

func sessionIDOf(req sdkmcp.Request) string {
	if req == nil {
		return ""
	}
	defer func() { recover() }()
	session := req.GetSession()
	if session == nil {
		return ""
	}
	return session.ID()
}

func paramsOf(req sdkmcp.Request) any {
	if req == nil {
		return nil
	}
	defer func() { recover() }()
	return req.GetParams()
}

func formatPayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	if len(data) > maxLoggedPayload {
		return strings.ToValidUTF8(string(data[:maxLoggedPayload]), "") + fmt.Sprintf("...(%d bytes)", len(data))
	}
	return string(data)
}
