package transport

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/worklog/internal/domain/task"
)

// CreateTaskRequest is the body of POST /api/tasks.
type CreateTaskRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Date        task.Date     `json:"date"`
	Priority    task.Priority `json:"priority"`
}

// UpdateTaskRequest is the body of PUT /api/tasks/{id}. Absent fields are unchanged.
type UpdateTaskRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Date        *task.Date     `json:"date"`
	Status      *task.Status   `json:"status"`
	Priority    *task.Priority `json:"priority"`
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	viewer, ok := s.viewer(w, r)
	if !ok {
		return
	}
	rng, err := rangeQuery(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	tasks, err := s.svc.Tasks.List(r.Context(), viewer, task.ListOptions{
		Start: rng.Start,
		End:   rng.End,
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
	})
	if err != nil {
		s.logger.Error("list tasks failed", "error", err)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	viewer, ok := s.viewer(w, r)
	if !ok {
		return
	}
	var req CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	created, err := s.svc.Tasks.Create(r.Context(), viewer, task.CreateRequest{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Priority:    req.Priority,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageResponse{Message: "task created", ID: created.ID})
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	viewer, ok := s.viewer(w, r)
	if !ok {
		return
	}
	var req UpdateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	updated, err := s.svc.Tasks.Update(r.Context(), viewer, task.UpdateRequest{
		ID:          chi.URLParam(r, "id"),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "task updated", ID: updated.ID})
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	viewer, ok := s.viewer(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.svc.Tasks.Delete(r.Context(), viewer, id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "task deleted", ID: id})
}

// rangeQuery reads the optional start_date and end_date query parameters.
func rangeQuery(r *http.Request) (task.Range, error) {
	var rng task.Range
	q := r.URL.Query()
	if v := q.Get("start_date"); v != "" {
		d, err := parseDateParam("start_date", v)
		if err != nil {
			return rng, err
		}
		rng.Start = &d
	}
	if v := q.Get("end_date"); v != "" {
		d, err := parseDateParam("end_date", v)
		if err != nil {
			return rng, err
		}
		rng.End = &d
	}
	return rng, nil
}
