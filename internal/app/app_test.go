package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rpggio/worklog/internal/config"
	"github.com/rpggio/worklog/internal/domain/user"
	"github.com/stretchr/testify/require"
)

func openTestApp(t *testing.T, mutate func(*config.Config)) *App {
	t.Helper()
	cfg := config.Default()
	cfg.DB.Path = filepath.Join(t.TempDir(), "data", "worklog.db")
	if mutate != nil {
		mutate(&cfg)
	}
	a, err := Open(Options{Config: cfg})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestOpen_CreatesDatabaseDir(t *testing.T) {
	a := openTestApp(t, nil)
	require.NoError(t, a.DB.Ping())
}

func TestSeed_Idempotent(t *testing.T) {
	a := openTestApp(t, nil)
	ctx := context.Background()

	created, err := a.Seed(ctx)
	require.NoError(t, err)
	require.Len(t, created, len(DefaultAccounts))

	created, err = a.Seed(ctx)
	require.NoError(t, err)
	require.Empty(t, created)

	admin, err := a.Users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, user.RoleManager, admin.Role)
}

func TestHandler_AuthDisabledUsesDefaultUser(t *testing.T) {
	a := openTestApp(t, func(c *config.Config) {
		c.Auth.Enabled = false
		c.Auth.DefaultUser = "zhang_san"
	})
	_, err := a.Seed(context.Background())
	require.NoError(t, err)

	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/edit-window")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_AuthEnabledRejectsAnonymous(t *testing.T) {
	a := openTestApp(t, nil)

	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/tasks")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
