package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rpggio/worklog/internal/domain/activity"
)

// ActivityRepository implements activity.Repository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Log inserts a new activity entry
func (r *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO activity_log (user_id, user_name, action, details, ip_address, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		entry.UserID,
		entry.UserName,
		entry.Action,
		entry.Details,
		entry.IPAddress,
		createdAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		entry.ID = id
	}

	entry.CreatedAt = createdAt

	return nil
}

// List returns one page of activity entries matching the given filters,
// newest first, and the total number of matches
func (r *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, int, error) {
	where := ""
	args := []any{}
	conditions := []string{}

	if opts.UserID != "" {
		conditions = append(conditions, "user_id = ?")
		args = append(args, opts.UserID)
	}
	if opts.Action != "" {
		conditions = append(conditions, "action LIKE ?")
		args = append(args, "%"+opts.Action+"%")
	}
	if opts.Start != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, opts.Start.UTC())
	}
	if opts.End != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, opts.End.UTC())
	}

	if len(conditions) > 0 {
		where = " WHERE " + joinConditions(conditions)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activity_log`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activity: %w", err)
	}

	query := `
		SELECT id, user_id, user_name, action, details, ip_address, created_at
		FROM activity_log
	` + where + " ORDER BY created_at DESC, id DESC"

	if opts.PerPage > 0 {
		query += " LIMIT ? OFFSET ?"
		page := max(opts.Page, 1)
		args = append(args, opts.PerPage, (page-1)*opts.PerPage)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	entries := []activity.Entry{}
	for rows.Next() {
		var entry activity.Entry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.UserName,
			&entry.Action,
			&entry.Details,
			&entry.IPAddress,
			&entry.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return entries, total, nil
}
