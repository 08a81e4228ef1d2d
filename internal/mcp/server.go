package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/worklog/internal/calendar"
	"github.com/rpggio/worklog/internal/domain/activity"
	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/rpggio/worklog/internal/domain/user"
	"github.com/rpggio/worklog/internal/hierarchy"
)

// TaskService defines task operations needed by MCP.
type TaskService interface {
	List(ctx context.Context, viewer user.User, opts task.ListOptions) ([]task.Task, error)
	Create(ctx context.Context, viewer user.User, req task.CreateRequest) (*task.Task, error)
	Update(ctx context.Context, viewer user.User, req task.UpdateRequest) (*task.Task, error)
	Delete(ctx context.Context, viewer user.User, id string) error
}

// DashboardService defines the view queries needed by MCP.
type DashboardService interface {
	Calendar(ctx context.Context, viewer user.User, month task.Date) (*calendar.Grid, error)
	Hierarchy(ctx context.Context, viewer user.User, filter task.Range) ([]hierarchy.YearNode, error)
	DaySchedule(ctx context.Context, viewer user.User, date task.Date, search string) (*calendar.DaySchedule, error)
	EditWindow() task.Window
}

// UserService defines user operations needed by MCP.
type UserService interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	ListEmployees(ctx context.Context, viewer user.User) ([]user.User, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	List(ctx context.Context, opts activity.ListOptions) (*activity.Page, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Tasks     TaskService
	Dashboard DashboardService
	Users     UserService
	Activity  ActivityService
}

// Config contains server configuration.
type Config struct {
	Services    Services
	Resolver    UserResolver
	AuthEnabled bool
	// DefaultUser is the username every request acts as when auth is off.
	DefaultUser   string
	TransportMode string // "stdio" or "http"
	Version       string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "worklog",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio is a local, single-user transport: auth is always off there.
	identify := defaultUserMiddleware(cfg.Services.Users, cfg.DefaultUser)
	if cfg.AuthEnabled && cfg.TransportMode != "stdio" {
		identify = authMiddleware(cfg.Resolver)
	}
	// The first middleware runs first, so traffic logs see the viewer.
	server.AddReceivingMiddleware(identify, trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, &tools{
		svc:    cfg.Services,
		views:  newViewStates(),
		logger: cfg.Logger,
	})

	return server
}
