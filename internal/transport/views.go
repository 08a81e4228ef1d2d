package transport

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/worklog/internal/calendar"
	"github.com/rpggio/worklog/internal/domain/task"
	"github.com/rpggio/worklog/internal/hierarchy"
)

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	viewer, ok := s.viewer(w, r)
	if !ok {
		return
	}
	var month task.Date
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := calendar.ParseMonth(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid month %q", v))
			return
		}
		month = m
	}

	grid, err := s.svc.Dashboard.Calendar(r.Context(), viewer, month)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

func (s *Server) handleHierarchy(w http.ResponseWriter, r *http.Request) {
	viewer, ok := s.viewer(w, r)
	if !ok {
		return
	}
	rng, err := rangeQuery(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	years, err := s.svc.Dashboard.Hierarchy(r.Context(), viewer, rng)
	if err != nil {
		s.logger.Error("hierarchy failed", "error", err)
		writeDomainError(w, err)
		return
	}
	if years == nil {
		years = []hierarchy.YearNode{}
	}
	writeJSON(w, http.StatusOK, years)
}

func (s *Server) handleDaySchedule(w http.ResponseWriter, r *http.Request) {
	viewer, ok := s.viewer(w, r)
	if !ok {
		return
	}
	date, err := parseDateParam("date", chi.URLParam(r, "date"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	schedule, err := s.svc.Dashboard.DaySchedule(r.Context(), viewer, date, r.URL.Query().Get("search"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

func (s *Server) handleEditWindow(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.viewer(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Dashboard.EditWindow())
}

func parseDateParam(name, v string) (task.Date, error) {
	d, err := task.ParseDate(v)
	if err != nil {
		return task.Date{}, fmt.Errorf("%w: %s: %v", task.ErrInvalidInput, name, err)
	}
	return d, nil
}
