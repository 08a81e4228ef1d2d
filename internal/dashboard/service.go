// Package dashboard answers the view queries of the task log by loading the
// viewer's tasks and running them through the calendar and hierarchy builders.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/worklog/internal/calendar"
	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/rpggio/worklog/internal/domain/user"
	"github.com/rpggio/worklog/internal/grouping"
	"github.com/rpggio/worklog/internal/hierarchy"
)

// TaskSource is the subset of the task service the dashboard reads from.
type TaskSource interface {
	List(ctx context.Context, viewer user.User, opts task.ListOptions) ([]task.Task, error)
	Now() time.Time
}

// Service builds dashboard views.
type Service struct {
	tasks  TaskSource
	logger *slog.Logger
}

// NewService creates a new dashboard service.
func NewService(tasks TaskSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{tasks: tasks, logger: logger}
}

// Calendar returns the month grid containing month for viewer.
func (s *Service) Calendar(ctx context.Context, viewer user.User, month task.Date) (*calendar.Grid, error) {
	if month.IsZero() {
		month = task.DateOf(s.tasks.Now())
	}
	start, end := calendar.GridRange(month)
	tasks, err := s.tasks.List(ctx, viewer, task.ListOptions{Start: &start, End: &end})
	if err != nil {
		return nil, fmt.Errorf("loading calendar tasks: %w", err)
	}

	grid := calendar.BuildGrid(calendar.NewContext(month, s.tasks.Now(), tasks, grouping.ForRole(viewer.Role)))
	s.logger.Debug("calendar built", "viewer", viewer.Username, "month", calendar.FirstOfMonth(month).String(), "tasks", len(tasks))
	return &grid, nil
}

// Hierarchy returns the year, month, week and day tree of viewer's tasks.
func (s *Service) Hierarchy(ctx context.Context, viewer user.User, filter task.Range) ([]hierarchy.YearNode, error) {
	tasks, err := s.tasks.List(ctx, viewer, task.ListOptions{Start: filter.Start, End: filter.End})
	if err != nil {
		return nil, fmt.Errorf("loading hierarchy tasks: %w", err)
	}
	years, err := hierarchy.Aggregate(tasks, hierarchy.Options{
		Range:  filter,
		Today:  task.DateOf(s.tasks.Now()),
		Policy: grouping.ForRole(viewer.Role),
	})
	if err != nil {
		return nil, fmt.Errorf("aggregating tasks: %w", err)
	}
	return years, nil
}

// DaySchedule returns the per-employee breakdown of one day. Managers only.
func (s *Service) DaySchedule(ctx context.Context, viewer user.User, date task.Date, search string) (*calendar.DaySchedule, error) {
	if !viewer.IsManager() {
		return nil, task.ErrForbidden
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", task.ErrInvalidInput)
	}
	tasks, err := s.tasks.List(ctx, viewer, task.ListOptions{Start: &date, End: &date})
	if err != nil {
		return nil, fmt.Errorf("loading day tasks: %w", err)
	}
	schedule := calendar.BuildDaySchedule(date, tasks, search)
	return &schedule, nil
}

// EditWindow returns the dates a task may currently be set to.
func (s *Service) EditWindow() task.Window {
	return task.EditableRange(s.tasks.Now())
}
