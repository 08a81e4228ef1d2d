package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/worklog/internal/domain/user"
)

// ErrInvalidToken is returned when a bearer token matches no API key.
var ErrInvalidToken = errors.New("invalid api key")

// APIKeyRepository stores hashed API keys and resolves them to users.
type APIKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new APIKeyRepository
func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// Issue creates a new random token for userID and returns it. Only the hash is stored.
func (r *APIKeyRepository) Issue(ctx context.Context, userID, description string) (string, error) {
	token := uuid.NewString()
	if err := r.Add(ctx, token, userID, description); err != nil {
		return "", err
	}
	return token, nil
}

// Add stores a caller-chosen token for userID.
func (r *APIKeyRepository) Add(ctx context.Context, token, userID, description string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO api_keys (key_hash, user_id, created_at, description) VALUES (?, ?, ?, ?)`,
		hashToken(token), userID, time.Now().UTC(), description,
	)
	if err != nil {
		return writeError("add api key", err)
	}
	return nil
}

// ResolveUser returns the user owning token and records its use.
func (r *APIKeyRepository) ResolveUser(ctx context.Context, token string) (*user.User, error) {
	hash := hashToken(token)
	query := `
		SELECT u.id, u.username, u.name, u.role, u.created_at
		FROM api_keys k
		JOIN users u ON u.id = k.user_id
		WHERE k.key_hash = ?
	`

	var u user.User
	err := r.db.QueryRowContext(ctx, query, hash).Scan(&u.ID, &u.Username, &u.Name, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve api key: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE api_keys SET last_used = ? WHERE key_hash = ?`, time.Now().UTC(), hash); err != nil {
		return nil, fmt.Errorf("failed to touch api key: %w", err)
	}

	return &u, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
