package task_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/worklog/internal/domain/activity"
	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/rpggio/worklog/internal/domain/user"
	"github.com/rpggio/worklog/internal/repository"
	"github.com/rpggio/worklog/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	alice   = user.User{ID: "u1", Username: "alice", Name: "Alice", Role: user.RoleEmployee}
	bob     = user.User{ID: "u2", Username: "bob", Name: "Bob", Role: user.RoleEmployee}
	manager = user.User{ID: "m1", Username: "boss", Name: "Boss", Role: user.RoleManager}
)

func fixedClock() time.Time {
	return time.Date(2024, time.June, 10, 14, 30, 0, 0, time.UTC)
}

func newService(tasks *mocks.TaskRepository, activities *mocks.ActivityRepository) *task.Service {
	return task.NewService(tasks, activities, nil).WithClock(fixedClock)
}

func TestTaskService_List_EmployeeSeesOwn(t *testing.T) {
	ctx := context.Background()
	tasks := &mocks.TaskRepository{}
	activities := &mocks.ActivityRepository{}

	tasks.On("List", ctx, task.ListOptions{UserID: "u1"}).Return([]task.Task{{ID: "t1", UserID: "u1"}}, nil)
	activities.On("Log", ctx, mock.MatchedBy(func(e *activity.Entry) bool {
		return e.Action == activity.ActionListTasks && e.UserID == "u1"
	})).Return(nil)

	list, err := newService(tasks, activities).List(ctx, alice, task.ListOptions{UserID: "someone-else"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	tasks.AssertExpectations(t)
	activities.AssertExpectations(t)
}

func TestTaskService_List_ManagerSeesAll(t *testing.T) {
	ctx := context.Background()
	tasks := &mocks.TaskRepository{}

	tasks.On("List", ctx, task.ListOptions{}).Return(nil, nil)

	list, err := task.NewService(tasks, nil, nil).List(ctx, manager, task.ListOptions{})
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()
	tasks := &mocks.TaskRepository{}
	activities := &mocks.ActivityRepository{}

	tasks.On("Create", ctx, mock.AnythingOfType("*task.Task")).Return(nil)
	activities.On("Log", ctx, mock.Anything).Return(nil)

	created, err := newService(tasks, activities).Create(ctx, alice, task.CreateRequest{
		Title: "  Write report ",
		Date:  task.NewDate(2024, time.June, 8),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Write report", created.Title)
	require.Equal(t, task.PriorityMedium, created.Priority)
	require.Equal(t, task.StatusInProgress, created.Status)
	require.Equal(t, "u1", created.UserID)
	require.Equal(t, "alice", created.UserUsername)
	require.Equal(t, fixedClock(), created.CreatedAt)
}

func TestTaskService_Create_Rejections(t *testing.T) {
	ctx := context.Background()
	svc := newService(&mocks.TaskRepository{}, &mocks.ActivityRepository{})

	_, err := svc.Create(ctx, manager, task.CreateRequest{Title: "x", Date: task.NewDate(2024, time.June, 10)})
	require.ErrorIs(t, err, task.ErrForbidden)

	_, err = svc.Create(ctx, alice, task.CreateRequest{Title: "  ", Date: task.NewDate(2024, time.June, 10)})
	require.ErrorIs(t, err, task.ErrInvalidInput)

	_, err = svc.Create(ctx, alice, task.CreateRequest{Title: "x", Date: task.NewDate(2024, time.June, 4)})
	require.ErrorIs(t, err, task.ErrOutsideEditWindow)

	_, err = svc.Create(ctx, alice, task.CreateRequest{Title: "x", Date: task.NewDate(2024, time.June, 11)})
	require.ErrorIs(t, err, task.ErrOutsideEditWindow)

	_, err = svc.Create(ctx, alice, task.CreateRequest{Title: "x"})
	require.ErrorIs(t, err, task.ErrInvalidInput)
}

func TestTaskService_Update(t *testing.T) {
	ctx := context.Background()
	tasks := &mocks.TaskRepository{}
	activities := &mocks.ActivityRepository{}

	existing := &task.Task{
		ID:       "t1",
		Title:    "Old",
		Date:     task.NewDate(2024, time.June, 9),
		Priority: task.PriorityLow,
		Status:   task.StatusInProgress,
		UserID:   "u1",
	}
	tasks.On("Get", ctx, "t1").Return(existing, nil)
	tasks.On("Update", ctx, mock.MatchedBy(func(t *task.Task) bool {
		return t.ID == "t1" && t.Title == "New" && t.Priority == task.PriorityHigh
	})).Return(nil)
	activities.On("Log", ctx, mock.Anything).Return(nil)

	title := "New"
	priority := task.PriorityHigh
	updated, err := newService(tasks, activities).Update(ctx, alice, task.UpdateRequest{
		ID:       "t1",
		Title:    &title,
		Priority: &priority,
	})
	require.NoError(t, err)
	require.Equal(t, "New", updated.Title)
	require.Equal(t, task.PriorityHigh, updated.Priority)
	require.Equal(t, existing.Date, updated.Date)
	require.Equal(t, "Old", existing.Title)
	tasks.AssertExpectations(t)
}

func TestTaskService_Update_NotOwner(t *testing.T) {
	ctx := context.Background()
	tasks := &mocks.TaskRepository{}
	tasks.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", UserID: "u1", Date: task.NewDate(2024, time.June, 9)}, nil)

	title := "mine now"
	_, err := newService(tasks, nil).Update(ctx, bob, task.UpdateRequest{ID: "t1", Title: &title})
	require.ErrorIs(t, err, task.ErrForbidden)
	tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTaskService_Update_MovedOutsideWindow(t *testing.T) {
	ctx := context.Background()
	tasks := &mocks.TaskRepository{}
	tasks.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", UserID: "u1", Date: task.NewDate(2024, time.June, 9)}, nil)

	old := task.NewDate(2024, time.May, 1)
	_, err := newService(tasks, nil).Update(ctx, alice, task.UpdateRequest{ID: "t1", Date: &old})
	require.ErrorIs(t, err, task.ErrOutsideEditWindow)
}

func TestTaskService_Update_Missing(t *testing.T) {
	ctx := context.Background()
	tasks := &mocks.TaskRepository{}
	tasks.On("Get", ctx, "nope").Return(nil, repository.ErrNotFound)

	_, err := newService(tasks, nil).Update(ctx, alice, task.UpdateRequest{ID: "nope"})
	require.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()
	tasks := &mocks.TaskRepository{}
	activities := &mocks.ActivityRepository{}

	tasks.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", UserID: "u1", Title: "gone"}, nil)
	tasks.On("Delete", ctx, "t1").Return(nil)
	activities.On("Log", ctx, mock.MatchedBy(func(e *activity.Entry) bool {
		return e.Action == activity.ActionDeleteTask
	})).Return(nil)

	svc := newService(tasks, activities)
	require.NoError(t, svc.Delete(ctx, alice, "t1"))
	require.ErrorIs(t, svc.Delete(ctx, bob, "t1"), task.ErrForbidden)
	require.ErrorIs(t, svc.Delete(ctx, manager, "t1"), task.ErrForbidden)
	tasks.AssertNumberOfCalls(t, "Delete", 1)
}

func TestTaskService_Get_HiddenFromOtherEmployees(t *testing.T) {
	ctx := context.Background()
	tasks := &mocks.TaskRepository{}
	tasks.On("Get", ctx, "t1").Return(&task.Task{ID: "t1", UserID: "u1"}, nil)

	svc := newService(tasks, nil)
	_, err := svc.Get(ctx, bob, "t1")
	require.ErrorIs(t, err, task.ErrTaskNotFound)

	got, err := svc.Get(ctx, manager, "t1")
	require.NoError(t, err)
	require.Equal(t, "t1", got.ID)
}

func TestTaskService_ActivityFailureDoesNotFailWrite(t *testing.T) {
	ctx := activity.WithRemoteAddr(context.Background(), "10.0.0.1")
	tasks := &mocks.TaskRepository{}
	activities := &mocks.ActivityRepository{}

	tasks.On("Create", ctx, mock.Anything).Return(nil)
	activities.On("Log", ctx, mock.MatchedBy(func(e *activity.Entry) bool {
		return e.IPAddress == "10.0.0.1"
	})).Return(repository.ErrInvalidInput)

	_, err := newService(tasks, activities).Create(ctx, alice, task.CreateRequest{
		Title: "x",
		Date:  task.NewDate(2024, time.June, 10),
	})
	require.NoError(t, err)
	activities.AssertExpectations(t)
}
