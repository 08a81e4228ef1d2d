package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/worklog/internal/app"
	"github.com/rpggio/worklog/internal/config"
	"github.com/rpggio/worklog/internal/domain/user"
	"github.com/stretchr/testify/require"
)

// Now is the fixed clock of every test server: Monday 2024-06-10 14:30 UTC.
var Now = time.Date(2024, time.June, 10, 14, 30, 0, 0, time.UTC)

// Seeded accounts. Each token authenticates the user of the same name.
const (
	ManagerToken = "manager-token"
	AliceToken   = "alice-token"
	BobToken     = "bob-token"
)

type TestServer struct {
	Server *httptest.Server
	App    *app.App
	Users  map[string]*user.User
}

// New starts the full stack on an httptest server backed by an in-memory
// database, with users boss (manager), alice and bob (employees).
func New(t *testing.T) *TestServer {
	t.Helper()

	cfg := config.Default()
	cfg.DB.Path = fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	a, err := app.Open(app.Options{
		Config:  cfg,
		Now:     func() time.Time { return Now },
		Version: "test",
	})
	require.NoError(t, err)

	ts := &TestServer{
		App:   a,
		Users: make(map[string]*user.User),
	}
	ts.seed(t)
	ts.Server = httptest.NewServer(a.Handler())

	t.Cleanup(func() {
		ts.Server.Close()
		_ = a.Close()
	})

	return ts
}

func (ts *TestServer) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	seeds := []struct {
		req   user.CreateRequest
		token string
	}{
		{user.CreateRequest{Username: "boss", Name: "Boss", Role: user.RoleManager}, ManagerToken},
		{user.CreateRequest{Username: "alice", Name: "Alice"}, AliceToken},
		{user.CreateRequest{Username: "bob", Name: "Bob"}, BobToken},
	}
	for _, s := range seeds {
		u, err := ts.App.Users.Create(ctx, s.req)
		require.NoError(t, err)
		require.NoError(t, ts.App.APIKeys.Add(ctx, s.token, u.ID, "test"))
		ts.Users[u.Username] = u
	}
}
