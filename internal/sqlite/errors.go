package sqlite

import (
	"fmt"
	"strings"

	"github.com/rpggio/worklog/internal/repository"
)

// writeError wraps a failed INSERT or UPDATE, translating constraint failures
// into repository sentinels.
func writeError(op string, err error) error {
	switch {
	case isForeignKeyViolation(err):
		return fmt.Errorf("failed to %s: %w", op, repository.ErrForeignKeyViolation)
	case isUniqueViolation(err):
		return fmt.Errorf("failed to %s: %w", op, repository.ErrConflict)
	case isCheckViolation(err):
		return fmt.Errorf("failed to %s: %w: %v", op, repository.ErrInvalidInput, err)
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isCheckViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "CHECK constraint failed")
}

func joinConditions(conditions []string) string {
	return strings.Join(conditions, " AND ")
}
