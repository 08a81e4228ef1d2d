package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/worklog/internal/domain/activity"
	"github.com/rpggio/worklog/internal/domain/user"
	"github.com/rpggio/worklog/internal/repository"
)

// Service is the write and read path of the task log. It enforces role rules,
// ownership and the edit window before anything reaches the repository.
type Service struct {
	tasks      Repository
	activities ActivityRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new task service.
func NewService(tasks Repository, activities ActivityRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		tasks:      tasks,
		activities: activities,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock replaces the time source used for the edit window.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Now returns the service's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// EditWindow returns the range of dates a task may currently be set to.
func (s *Service) EditWindow() Window {
	return EditableRange(s.now())
}

// CreateRequest describes a task creation request.
type CreateRequest struct {
	Title       string
	Description string
	Date        Date
	Priority    Priority
}

// UpdateRequest describes a task update. Nil fields are left unchanged.
type UpdateRequest struct {
	ID          string
	Title       *string
	Description *string
	Date        *Date
	Status      *Status
	Priority    *Priority
}

// List returns the tasks visible to viewer: all of them for a manager, only
// their own for anyone else.
func (s *Service) List(ctx context.Context, viewer user.User, opts ListOptions) ([]Task, error) {
	if !viewer.IsManager() {
		opts.UserID = viewer.ID
	}
	tasks, err := s.tasks.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}

	s.log(ctx, viewer, activity.ActionListTasks, fmt.Sprintf("viewed %d tasks", len(tasks)))
	return tasks, nil
}

// Get returns one task if it is visible to viewer.
func (s *Service) Get(ctx context.Context, viewer user.User, id string) (*Task, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.IsManager() && t.UserID != viewer.ID {
		return nil, ErrTaskNotFound
	}
	return t, nil
}

// Create adds a task owned by viewer. Managers cannot create tasks.
func (s *Service) Create(ctx context.Context, viewer user.User, req CreateRequest) (*Task, error) {
	if viewer.IsManager() {
		return nil, ErrForbidden
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if err := s.EditWindow().Validate(req.Date); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	now := s.now()
	t := &Task{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  req.Description,
		Date:         req.Date,
		Priority:     priority,
		Status:       StatusInProgress,
		UserID:       viewer.ID,
		UserUsername: viewer.Username,
		UserName:     viewer.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s.log(ctx, viewer, activity.ActionCreateTask, fmt.Sprintf("created task %q (date %s)", t.Title, t.Date))
	return t, nil
}

// Update replaces the viewer's task with an edited snapshot.
func (s *Service) Update(ctx context.Context, viewer user.User, req UpdateRequest) (*Task, error) {
	if viewer.IsManager() {
		return nil, ErrForbidden
	}
	if req.ID == "" {
		return nil, ErrInvalidInput
	}

	current, err := s.load(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if current.UserID != viewer.ID {
		return nil, ErrForbidden
	}

	updated := *current
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		updated.Title = title
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Date != nil {
		updated.Date = *req.Date
	}
	if req.Status != nil && *req.Status != "" {
		updated.Status = *req.Status
	}
	if req.Priority != nil && *req.Priority != "" {
		updated.Priority = *req.Priority
	}
	if err := s.EditWindow().Validate(updated.Date); err != nil {
		return nil, err
	}
	updated.UpdatedAt = s.now()

	if err := s.tasks.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("updating task: %w", err)
	}

	s.log(ctx, viewer, activity.ActionUpdateTask,
		fmt.Sprintf("updated task %q -> %q (date %s)", current.Title, updated.Title, updated.Date))
	return &updated, nil
}

// Delete removes the viewer's task.
func (s *Service) Delete(ctx context.Context, viewer user.User, id string) error {
	if viewer.IsManager() {
		return ErrForbidden
	}
	current, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if current.UserID != viewer.ID {
		return ErrForbidden
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("deleting task: %w", err)
	}

	s.log(ctx, viewer, activity.ActionDeleteTask, fmt.Sprintf("deleted task %q", current.Title))
	return nil
}

func (s *Service) load(ctx context.Context, id string) (*Task, error) {
	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("loading task: %w", err)
	}
	return t, nil
}

func (s *Service) log(ctx context.Context, viewer user.User, action activity.Action, details string) {
	if s.activities == nil {
		return
	}
	err := s.activities.Log(ctx, &activity.Entry{
		UserID:    viewer.ID,
		UserName:  viewer.Name,
		Action:    action,
		Details:   details,
		IPAddress: activity.RemoteAddr(ctx),
		CreatedAt: s.now(),
	})
	if err != nil {
		s.logger.Warn("activity log write failed", "action", action, "error", err)
	}
}
