// File path: internal/api/dailytasks_handler.go
package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

func (s *Server) handleDailyTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = s.today()
	}
	tasks, err := s.store.DailyTasks(ctx, date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"date": date, "tasks": tasks})
}

func (s *Server) handleCreateDailyTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req dailyTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = s.today()
	}
	task, err := s.store.CreateDailyTask(ctx, req.Title, date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateDailyTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req dailyTaskPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	completed := false
	if req.Completed != nil {
		completed = *req.Completed
	}
	if err := s.store.SetDailyTaskCompleted(ctx, id, completed, req.CheckInID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

func (s *Server) handleDeleteDailyTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.store.DeleteDailyTask(ctx, id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}
