// Package app assembles the worklog stack: storage, services and the HTTP and
// MCP surfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/worklog/internal/config"
	"github.com/rpggio/worklog/internal/dashboard"
	"github.com/rpggio/worklog/internal/domain/activity"
	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/rpggio/worklog/internal/domain/user"
	"github.com/rpggio/worklog/internal/mcp"
	"github.com/rpggio/worklog/internal/sqlite"
	"github.com/rpggio/worklog/internal/transport"
)

// Options configures Open.
type Options struct {
	Config config.Config
	Logger *slog.Logger
	// Now overrides the clock used for the edit window.
	Now     func() time.Time
	Version string
}

// App is an opened worklog stack.
type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Version string

	DB        *sqlite.DB
	APIKeys   *sqlite.APIKeyRepository
	Tasks     *task.Service
	Users     *user.Service
	Activity  *activity.Service
	Dashboard *dashboard.Service
}

// Open opens the database, applies migrations and builds the services.
func Open(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg := opts.Config

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	taskRepo := sqlite.NewTaskRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	tasks := task.NewService(taskRepo, activityRepo, logger)
	if opts.Now != nil {
		tasks.WithClock(opts.Now)
	}

	return &App{
		Config:    cfg,
		Logger:    logger,
		Version:   opts.Version,
		DB:        db,
		APIKeys:   sqlite.NewAPIKeyRepository(db),
		Tasks:     tasks,
		Users:     user.NewService(userRepo, logger),
		Activity:  activity.NewService(activityRepo, logger),
		Dashboard: dashboard.NewService(tasks, logger),
	}, nil
}

// Close closes the database.
func (a *App) Close() error {
	return a.DB.Close()
}

// MCPServer builds the MCP tool server.
func (a *App) MCPServer() *sdkmcp.Server {
	return mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Tasks:     a.Tasks,
			Dashboard: a.Dashboard,
			Users:     a.Users,
			Activity:  a.Activity,
		},
		Resolver:      a.APIKeys,
		AuthEnabled:   a.Config.Auth.Enabled,
		DefaultUser:   a.Config.Auth.DefaultUser,
		TransportMode: a.Config.Transport.Mode,
		Version:       a.Version,
		Logger:        a.Logger,
	})
}

// Handler returns the HTTP router with the REST API and the MCP streamable
// HTTP endpoint.
func (a *App) Handler() http.Handler {
	mcpServer := a.MCPServer()
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	auth := transport.AuthMiddleware(a.APIKeys)
	if !a.Config.Auth.Enabled {
		auth = transport.DefaultUserMiddleware(a.Users, a.Config.Auth.DefaultUser)
	}

	return transport.NewServer(transport.Config{
		Services: transport.Services{
			Tasks:     a.Tasks,
			Dashboard: a.Dashboard,
			Users:     a.Users,
			Activity:  a.Activity,
		},
		Auth:   auth,
		MCP:    mcpHandler,
		Labels: a.Config.Labels,
		Logger: a.Logger,
	})
}

// RunHTTP serves Handler on the configured address until ctx is canceled.
func (a *App) RunHTTP(ctx context.Context) error {
	addr := a.Config.Server.Addr()
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening", "addr", addr, "auth", a.Config.Auth.Enabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.Logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// RunStdio serves the MCP server over stdin/stdout until stdin closes or ctx
// is canceled. Auth is always disabled.
func (a *App) RunStdio(ctx context.Context) error {
	a.Logger.Info("starting stdio transport", "auth", "disabled", "user", a.Config.Auth.DefaultUser)
	return a.MCPServer().Run(ctx, &sdkmcp.StdioTransport{})
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
