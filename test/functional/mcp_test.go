package functional_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/worklog/internal/testserver"
	"github.com/stretchr/testify/require"
)

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (b bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return b.base.RoundTrip(req)
}

func connectHTTP(t *testing.T, ts *testserver.TestServer, token string) *sdkmcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	transport := &sdkmcp.StreamableClientTransport{
		Endpoint: ts.Server.URL + "/mcp",
		HTTPClient: &http.Client{
			Transport: bearerTransport{token: token, base: http.DefaultTransport},
		},
		MaxRetries: -1,
	}
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, transport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callTool(t *testing.T, cs *sdkmcp.ClientSession, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := cs.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "CallTool %s failed", name)
	return result
}

func toolJSON(t *testing.T, result *sdkmcp.CallToolResult) json.RawMessage {
	t.Helper()
	for _, content := range result.Content {
		if text, ok := content.(*sdkmcp.TextContent); ok {
			require.False(t, result.IsError, "tool returned error: %s", text.Text)
			return json.RawMessage(text.Text)
		}
	}
	t.Fatalf("tool returned no text content")
	return nil
}

func TestHTTPFunctional_ToolsList(t *testing.T) {
	ts := testserver.New(t)
	cs := connectHTTP(t, ts, testserver.AliceToken)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	res, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"list_tasks", "create_task", "update_task", "delete_task",
		"calendar_month", "task_hierarchy", "toggle_node", "day_schedule",
		"edit_window", "list_users", "recent_activity",
	}, names)
}

func TestHTTPFunctional_EmployeeAndManager(t *testing.T) {
	ts := testserver.New(t)
	alice := connectHTTP(t, ts, testserver.AliceToken)
	boss := connectHTTP(t, ts, testserver.ManagerToken)

	var created struct {
		ID       string `json:"id"`
		UserName string `json:"user_name"`
	}
	require.NoError(t, json.Unmarshal(toolJSON(t, callTool(t, alice, "create_task", map[string]any{
		"title": "Ship release",
		"date":  "2024-06-10",
	})), &created))
	require.Equal(t, "Alice", created.UserName)

	var schedule struct {
		Users []struct {
			Username string `json:"username"`
			Tasks    []struct {
				ID       string `json:"id"`
				Editable bool   `json:"editable"`
			} `json:"tasks"`
		} `json:"users"`
	}
	require.NoError(t, json.Unmarshal(toolJSON(t, callTool(t, boss, "day_schedule", map[string]any{
		"date": "2024-06-10",
	})), &schedule))
	require.Len(t, schedule.Users, 1)
	require.Equal(t, created.ID, schedule.Users[0].Tasks[0].ID)
	require.False(t, schedule.Users[0].Tasks[0].Editable)

	res := callTool(t, boss, "delete_task", map[string]any{"id": created.ID})
	require.True(t, res.IsError)
}

func TestHTTPFunctional_RejectsBadToken(t *testing.T) {
	ts := testserver.New(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	transport := &sdkmcp.StreamableClientTransport{
		Endpoint: ts.Server.URL + "/mcp",
		HTTPClient: &http.Client{
			Transport: bearerTransport{token: "not-a-token", base: http.DefaultTransport},
		},
		MaxRetries: -1,
	}
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	_, err := client.Connect(ctx, transport, nil)
	require.Error(t, err)
}
