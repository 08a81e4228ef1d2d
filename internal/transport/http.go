package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/worklog/internal/calendar"
	"github.com/rpggio/worklog/internal/domain/activity"
	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/rpggio/worklog/internal/domain/user"
	"github.com/rpggio/worklog/internal/hierarchy"
)

// TaskService defines task operations needed by the REST API.
type TaskService interface {
	List(ctx context.Context, viewer user.User, opts task.ListOptions) ([]task.Task, error)
	Create(ctx context.Context, viewer user.User, req task.CreateRequest) (*task.Task, error)
	Update(ctx context.Context, viewer user.User, req task.UpdateRequest) (*task.Task, error)
	Delete(ctx context.Context, viewer user.User, id string) error
	Now() time.Time
}

// DashboardService defines the view queries needed by the REST API.
type DashboardService interface {
	Calendar(ctx context.Context, viewer user.User, month task.Date) (*calendar.Grid, error)
	Hierarchy(ctx context.Context, viewer user.User, filter task.Range) ([]hierarchy.YearNode, error)
	DaySchedule(ctx context.Context, viewer user.User, date task.Date, search string) (*calendar.DaySchedule, error)
	EditWindow() task.Window
}

// UserService defines user operations needed by the REST API.
type UserService interface {
	ListEmployees(ctx context.Context, viewer user.User) ([]user.User, error)
}

// ActivityService defines activity operations needed by the REST API.
type ActivityService interface {
	List(ctx context.Context, opts activity.ListOptions) (*activity.Page, error)
	RecordQuietly(ctx context.Context, entry *activity.Entry)
}

// Services contains all domain services needed by the REST API.
type Services struct {
	Tasks     TaskService
	Dashboard DashboardService
	Users     UserService
	Activity  ActivityService
}

// Config wires the HTTP router.
type Config struct {
	Services Services
	// Auth resolves the viewer of every /api and /mcp request.
	Auth func(http.Handler) http.Handler
	// MCP is mounted at /mcp when non-nil.
	MCP    http.Handler
	Labels task.Labels
	Logger *slog.Logger
}

// Server holds the REST handlers.
type Server struct {
	svc    Services
	labels task.Labels
	logger *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{svc: cfg.Services, labels: cfg.Labels, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RemoteAddrMiddleware)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)

	r.Group(func(r chi.Router) {
		if cfg.Auth != nil {
			r.Use(cfg.Auth)
		}

		r.Route("/api", func(r chi.Router) {
			r.Get("/tasks", srv.handleListTasks)
			r.Post("/tasks", srv.handleCreateTask)
			r.Put("/tasks/{id}", srv.handleUpdateTask)
			r.Delete("/tasks/{id}", srv.handleDeleteTask)

			r.Get("/calendar", srv.handleCalendar)
			r.Get("/hierarchy", srv.handleHierarchy)
			r.Get("/schedule/{date}", srv.handleDaySchedule)
			r.Get("/edit-window", srv.handleEditWindow)

			r.Get("/users", srv.handleListUsers)
			r.Get("/logs", srv.handleListLogs)
			r.Get("/export-csv", srv.handleExportCSV)
		})

		if cfg.MCP != nil {
			r.Handle("/mcp", cfg.MCP)
			r.Handle("/mcp/*", cfg.MCP)
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// viewer returns the request's user or writes 401.
func (s *Server) viewer(w http.ResponseWriter, r *http.Request) (user.User, bool) {
	u, ok := ViewerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, ErrUnauthorized.Error())
	}
	return u, ok
}

// RequestLogger logs one line per request at info level.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}
