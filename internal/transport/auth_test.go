package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rpggio/worklog/internal/domain/activity"
	"github.com/rpggio/worklog/internal/domain/user"
	"github.com/stretchr/testify/require"
)

type testResolver struct {
	tokenToUser map[string]user.User
	err         error
}

func (r *testResolver) ResolveUser(_ context.Context, token string) (*user.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.tokenToUser[token]
	if !ok {
		return nil, ErrUnauthorized
	}
	return &u, nil
}

func (r *testResolver) GetByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range r.tokenToUser {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func TestAuthMiddleware(t *testing.T) {
	resolver := &testResolver{tokenToUser: map[string]user.User{"token": {ID: "u1", Username: "alice"}}}

	handler := AuthMiddleware(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer, ok := ViewerFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "alice", viewer.Username)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_Invalid(t *testing.T) {
	resolver := &testResolver{err: errors.New("invalid")}

	handler := AuthMiddleware(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"missing bearer token"}`, rec.Body.String())
}

func TestDefaultUserMiddleware(t *testing.T) {
	lookup := &testResolver{tokenToUser: map[string]user.User{"x": {ID: "u1", Username: "alice"}}}

	ok := DefaultUserMiddleware(lookup, "alice")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer, found := ViewerFromContext(r.Context())
		require.True(t, found)
		require.Equal(t, "u1", viewer.ID)
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	ok.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	missing := DefaultUserMiddleware(lookup, "ghost")(http.NotFoundHandler())
	rec = httptest.NewRecorder()
	missing.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRemoteAddrMiddleware(t *testing.T) {
	var seen string
	handler := RemoteAddrMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = activity.RemoteAddr(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:51234"
	handler.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, "192.0.2.7", seen)
}
