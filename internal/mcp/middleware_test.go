package mcp

import (
	"context"
	"errors"
	"net/http"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/worklog/internal/domain/activity"
	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/rpggio/worklog/internal/domain/user"
	"github.com/stretchr/testify/require"
)

type resolverStub struct {
	users map[string]user.User
}

func (r resolverStub) ResolveUser(_ context.Context, token string) (*user.User, error) {
	u, ok := r.users[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return &u, nil
}

func captureViewer(seen *user.User, addr *string) sdkmcp.MethodHandler {
	return func(ctx context.Context, _ string, _ sdkmcp.Request) (sdkmcp.Result, error) {
		v, err := viewerFrom(ctx)
		if err != nil {
			return nil, err
		}
		*seen = v
		*addr = activity.RemoteAddr(ctx)
		return &sdkmcp.CallToolResult{}, nil
	}
}

func requestWithHeader(h http.Header) *sdkmcp.CallToolRequest {
	return &sdkmcp.CallToolRequest{
		Params: &sdkmcp.CallToolParamsRaw{Name: "edit_window"},
		Extra:  &sdkmcp.RequestExtra{Header: h},
	}
}

func TestAuthMiddleware(t *testing.T) {
	resolver := resolverStub{users: map[string]user.User{
		"good-token": {ID: "u1", Username: "alice", Role: user.RoleEmployee},
	}}
	var seen user.User
	var addr string
	handler := authMiddleware(resolver)(captureViewer(&seen, &addr))
	ctx := context.Background()

	h := http.Header{}
	h.Set("Authorization", "Bearer good-token")
	h.Set("X-Forwarded-For", "10.1.2.3, 10.0.0.1")
	_, err := handler(ctx, "tools/call", requestWithHeader(h))
	require.NoError(t, err)
	require.Equal(t, "alice", seen.Username)
	require.Equal(t, "10.1.2.3", addr)

	h.Set("Authorization", "Bearer bad-token")
	_, err = handler(ctx, "tools/call", requestWithHeader(h))
	require.ErrorContains(t, err, "unauthorized")

	_, err = handler(ctx, "tools/call", requestWithHeader(http.Header{}))
	require.ErrorContains(t, err, "missing bearer token")

	_, err = handler(ctx, "tools/call", &sdkmcp.CallToolRequest{Params: &sdkmcp.CallToolParamsRaw{}})
	require.ErrorContains(t, err, "missing headers")
}

func TestAuthMiddleware_SkipsProtocolMethods(t *testing.T) {
	called := false
	next := func(ctx context.Context, _ string, _ sdkmcp.Request) (sdkmcp.Result, error) {
		called = true
		_, err := viewerFrom(ctx)
		require.ErrorIs(t, err, errNoViewer)
		return nil, nil
	}
	handler := authMiddleware(resolverStub{})(next)

	_, err := handler(context.Background(), "ping", requestWithHeader(nil))
	require.NoError(t, err)
	require.True(t, called)
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Nil(t, MapError(errors.New("boom")))

	cases := map[error]string{
		task.ErrTaskNotFound:      "TASK_NOT_FOUND",
		task.ErrOutsideEditWindow: "OUTSIDE_EDIT_WINDOW",
		task.ErrForbidden:         "FORBIDDEN",
		user.ErrForbidden:         "FORBIDDEN",
		task.ErrInvalidInput:      "INVALID_INPUT",
		user.ErrUserNotFound:      "USER_NOT_FOUND",
	}
	for err, code := range cases {
		apiErr := MapError(err)
		require.NotNil(t, apiErr, err.Error())
		require.Equal(t, code, apiErr.Code)
		require.ErrorIs(t, apiErr, err)
	}
}
