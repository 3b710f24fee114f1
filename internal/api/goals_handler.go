// File path: internal/api/goals_handler.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gjagils/Grip/internal/common"
	"github.com/gjagils/Grip/internal/store"
)

// handleGoals lists all goals grouped into active yearly, active
// quarterly and archived, mirroring the goals overview.
func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	all, err := s.store.Goals(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	yearly := []store.Goal{}
	quarterly := []store.Goal{}
	archived := []store.Goal{}
	for _, goal := range all {
		switch {
		case goal.Status != "active":
			archived = append(archived, goal)
		case goal.Type == "yearly":
			yearly = append(yearly, goal)
		default:
			quarterly = append(quarterly, goal)
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"yearly_goals":    yearly,
		"quarterly_goals": quarterly,
		"archived_goals":  archived,
		"current_year":    s.now().Year(),
		"current_quarter": s.currentQuarter(),
	})
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()
	var input store.GoalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if input.Year == 0 {
		input.Year = s.now().Year()
	}
	goal, err := s.store.CreateGoal(ctx, input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	logger.Info("api: goal created", "id", goal.ID, "type", goal.Type)
	writeJSON(w, http.StatusCreated, goal)
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var patch store.GoalPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	goal, err := s.store.UpdateGoal(ctx, id, patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (s *Server) handleAddGoalUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req goalUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	update, err := s.store.AddGoalUpdate(ctx, id, req.Note, req.CheckInID, req.WeekReviewID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, update)
}

func (s *Server) handleGoalTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	tasks, err := s.store.TasksForGoal(ctx, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

func (s *Server) handleAddGoalTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req goalTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	task, err := s.store.AddGoalTask(ctx, id, req.Title)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateGoalTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req goalTaskPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Completed == nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("completed required"))
		return
	}
	if err := s.store.SetGoalTaskCompleted(ctx, id, *req.Completed); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

func (s *Server) handleDeleteGoalTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.store.DeleteGoalTask(ctx, id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}
