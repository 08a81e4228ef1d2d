package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/worklog/internal/domain/user"
	"github.com/rpggio/worklog/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyRepository_IssueAndResolve(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1", "alice", "Alice", user.RoleEmployee)

	repo := NewAPIKeyRepository(db)
	token, err := repo.Issue(ctx, "u1", "laptop")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	var stored string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT key_hash FROM api_keys WHERE user_id = ?`, "u1").Scan(&stored))
	require.NotEqual(t, token, stored)
	require.Equal(t, hashToken(token), stored)

	u, err := repo.ResolveUser(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)

	var used int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM api_keys WHERE last_used IS NOT NULL`).Scan(&used))
	require.Equal(t, 1, used)

	_, err = repo.ResolveUser(ctx, "wrong")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAPIKeyRepository_Add(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1", "alice", "Alice", user.RoleEmployee)

	repo := NewAPIKeyRepository(db)
	require.NoError(t, repo.Add(ctx, "fixed-token", "u1", ""))
	require.ErrorIs(t, repo.Add(ctx, "fixed-token", "u1", ""), repository.ErrConflict)
	require.ErrorIs(t, repo.Add(ctx, "other", "ghost", ""), repository.ErrForeignKeyViolation)
}
