package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/rpggio/worklog/internal/domain/user"
	"github.com/stretchr/testify/require"
)

func insertUser(t *testing.T, db *DB, id, username, name string, role user.Role) *user.User {
	t.Helper()
	u := &user.User{ID: id, Username: username, Name: name, Role: role, CreatedAt: time.Now()}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func insertTask(t *testing.T, db *DB, id, userID string, date task.Date, title string) *task.Task {
	t.Helper()
	now := time.Now()
	tk := &task.Task{
		ID:        id,
		Title:     title,
		Date:      date,
		Priority:  task.PriorityMedium,
		Status:    task.StatusInProgress,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, NewTaskRepository(db).Create(context.Background(), tk))
	return tk
}
