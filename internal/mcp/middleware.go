package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/worklog/internal/domain/activity"
	"github.com/rpggio/worklog/internal/domain/user"
)

type contextKey int

const viewerKey contextKey = iota

var errNoViewer = errors.New("unauthorized: no user for request")

// viewerFrom returns the user the request acts as.
func viewerFrom(ctx context.Context) (user.User, error) {
	v, ok := ctx.Value(viewerKey).(user.User)
	if !ok {
		return user.User{}, errNoViewer
	}
	return v, nil
}

func withViewer(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, viewerKey, u)
}

// UserResolver resolves the user behind a bearer token.
type UserResolver interface {
	ResolveUser(ctx context.Context, token string) (*user.User, error)
}

// protocolMethod reports whether method is part of the handshake and needs no user.
func protocolMethod(method string) bool {
	return method == "initialize" || method == "ping" || strings.HasPrefix(method, "notifications/")
}

// authMiddleware implements bearer token authentication as MCP middleware.
func authMiddleware(resolver UserResolver) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if protocolMethod(method) {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return nil, fmt.Errorf("unauthorized: missing headers")
			}

			auth := extra.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				return nil, fmt.Errorf("unauthorized: missing bearer token")
			}

			u, err := resolver.ResolveUser(ctx, token)
			if err != nil {
				return nil, fmt.Errorf("unauthorized: %w", err)
			}
			if u == nil {
				return nil, fmt.Errorf("unauthorized: invalid bearer token")
			}

			ctx = withViewer(ctx, *u)
			ctx = activity.WithRemoteAddr(ctx, forwardedFor(extra))
			return next(ctx, method, req)
		}
	}
}

// defaultUserMiddleware makes every request act as the named user when auth is disabled.
func defaultUserMiddleware(users UserService, username string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if protocolMethod(method) {
				return next(ctx, method, req)
			}
			u, err := users.GetByUsername(ctx, username)
			if err != nil {
				return nil, fmt.Errorf("default user %q: %w", username, err)
			}
			ctx = withViewer(ctx, *u)
			ctx = activity.WithRemoteAddr(ctx, forwardedFor(req.GetExtra()))
			return next(ctx, method, req)
		}
	}
}

func forwardedFor(extra *sdkmcp.RequestExtra) string {
	if extra == nil || extra.Header == nil {
		return ""
	}
	if fwd := extra.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	return extra.Header.Get("X-Real-IP")
}
