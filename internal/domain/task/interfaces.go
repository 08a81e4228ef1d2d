package task

import (
	"context"

	"github.com/rpggio/worklog/internal/domain/activity"
)

// Repository provides persistence for tasks.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	Get(ctx context.Context, id string) (*Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListOptions) ([]Task, error)
}

// ActivityRepository logs task operations.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
}
