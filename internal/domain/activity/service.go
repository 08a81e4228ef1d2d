package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Service handles activity log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Record logs an activity entry with the current timestamp if missing.
func (s *Service) Record(ctx context.Context, entry *Entry) error {
	if entry == nil || entry.UserID == "" || entry.Action == "" {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// RecordQuietly logs an entry, reporting failures to the logger only.
func (s *Service) RecordQuietly(ctx context.Context, entry *Entry) {
	if err := s.Record(ctx, entry); err != nil {
		s.logger.Warn("activity log write failed", "action", entry.Action, "error", err)
	}
}

// List returns one page of entries, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) (*Page, error) {
	opts = opts.normalized()
	entries, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	pages := (total + opts.PerPage - 1) / opts.PerPage
	return &Page{
		Entries:     entries,
		Total:       total,
		Pages:       pages,
		CurrentPage: opts.Page,
	}, nil
}
