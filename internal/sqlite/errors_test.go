package sqlite

import (
	"errors"
	"testing"

	"github.com/rpggio/worklog/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	err := writeError("create task", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"))
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
	require.Contains(t, err.Error(), "failed to create task")

	err = writeError("create user", errors.New("constraint failed: UNIQUE constraint failed: users.username (2067)"))
	require.ErrorIs(t, err, repository.ErrConflict)

	err = writeError("create user", errors.New("constraint failed: CHECK constraint failed: role (275)"))
	require.ErrorIs(t, err, repository.ErrInvalidInput)

	cause := errors.New("disk I/O error")
	err = writeError("update task", cause)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "failed to update task: disk I/O error", err.Error())
}

func TestWriteError_CheckConstraintFromDB(t *testing.T) {
	db := NewTestDB(t)
	_, err := db.Exec(`INSERT INTO users (id, username, name, role, created_at) VALUES ('u1', 'x', 'X', 'owner', CURRENT_TIMESTAMP)`)
	require.Error(t, err)
	require.ErrorIs(t, writeError("create user", err), repository.ErrInvalidInput)
}
