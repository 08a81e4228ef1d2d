package transport

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/rpggio/worklog/internal/domain/activity"
	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/rpggio/worklog/internal/export"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	viewer, ok := s.viewer(w, r)
	if !ok {
		return
	}
	users, err := s.svc.Users.ListEmployees(r.Context(), viewer)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.svc.Activity.RecordQuietly(r.Context(), &activity.Entry{
		UserID:    viewer.ID,
		UserName:  viewer.Name,
		Action:    activity.ActionListUsers,
		Details:   fmt.Sprintf("viewed %d users", len(users)),
		IPAddress: activity.RemoteAddr(r.Context()),
		CreatedAt: s.svc.Tasks.Now(),
	})
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	viewer, ok := s.viewer(w, r)
	if !ok {
		return
	}
	if !viewer.IsManager() {
		writeError(w, http.StatusForbidden, task.ErrForbidden.Error())
		return
	}

	q := r.URL.Query()
	opts := activity.ListOptions{
		UserID: q.Get("user_id"),
		Action: q.Get("action"),
	}
	var err error
	if opts.Page, err = intParam(q.Get("page")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid page")
		return
	}
	if opts.PerPage, err = intParam(q.Get("per_page")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid per_page")
		return
	}
	rng, err := rangeQuery(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if rng.Start != nil {
		opts.Start = &rng.Start.Time
	}
	if rng.End != nil {
		opts.End = &rng.End.Time
	}

	page, err := s.svc.Activity.List(r.Context(), opts)
	if err != nil {
		s.logger.Error("list activity failed", "error", err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	viewer, ok := s.viewer(w, r)
	if !ok {
		return
	}
	if !viewer.IsManager() {
		writeError(w, http.StatusForbidden, task.ErrForbidden.Error())
		return
	}
	rng, err := rangeQuery(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	tasks, err := s.svc.Tasks.List(r.Context(), viewer, task.ListOptions{Start: rng.Start, End: rng.End})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	now := s.svc.Tasks.Now()
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename(now))
	if err := export.WriteCSV(w, tasks, s.labels); err != nil {
		s.logger.Error("export failed", "error", err)
		return
	}

	s.svc.Activity.RecordQuietly(r.Context(), &activity.Entry{
		UserID:    viewer.ID,
		UserName:  viewer.Name,
		Action:    activity.ActionExportCSV,
		Details:   fmt.Sprintf("exported %d tasks", len(tasks)),
		IPAddress: activity.RemoteAddr(r.Context()),
		CreatedAt: now,
	})
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
