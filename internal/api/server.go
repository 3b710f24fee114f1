// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/gjagils/Grip/internal/common"
	"github.com/gjagils/Grip/internal/insights"
	"github.com/gjagils/Grip/internal/llm"
	"github.com/gjagils/Grip/internal/store"
)

const dateLayout = "2006-01-02"

type Server struct {
	router   chi.Router
	store    *store.Store
	provider llm.Provider
	coach    *insights.Coach

	// now is injectable so date-sensitive handlers are testable.
	now func() time.Time
}

func NewServer(st *store.Store, provider llm.Provider) (*Server, error) {
	logger := common.Logger()
	if st == nil {
		return nil, fmt.Errorf("store required")
	}
	if provider == nil {
		provider = llm.NewProvider()
	}
	builder, err := insights.NewContextBuilder(st, insights.DefaultContextConfig())
	if err != nil {
		return nil, fmt.Errorf("init context builder: %w", err)
	}
	coach, err := insights.NewCoach(provider, builder)
	if err != nil {
		return nil, fmt.Errorf("init coach: %w", err)
	}
	srv := &Server{
		router:   chi.NewRouter(),
		store:    st,
		provider: provider,
		coach:    coach,
		now:      time.Now,
	}
	srv.routes()
	logger.Info("api: server ready", "provider", provider.Name())
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	logger.Info("api: configuring routes")
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Get("/v1/dashboard", s.handleDashboard)
	s.router.Get("/v1/focus", s.handleFocus)

	s.router.Get("/v1/checkin/questions", s.handleCheckInQuestions)
	s.router.Post("/v1/checkin", s.handleSaveCheckIn)
	s.router.Get("/v1/checkin/history", s.handleCheckInHistory)

	s.router.Get("/v1/weekreview", s.handleWeekReview)
	s.router.Put("/v1/weekreview", s.handleSaveWeekReview)

	s.router.Get("/v1/goals", s.handleGoals)
	s.router.Post("/v1/goals", s.handleCreateGoal)
	s.router.Patch("/v1/goals/{id}", s.handleUpdateGoal)
	s.router.Post("/v1/goals/{id}/updates", s.handleAddGoalUpdate)
	s.router.Get("/v1/goals/{id}/tasks", s.handleGoalTasks)
	s.router.Post("/v1/goals/{id}/tasks", s.handleAddGoalTask)
	s.router.Patch("/v1/tasks/{id}", s.handleUpdateGoalTask)
	s.router.Delete("/v1/tasks/{id}", s.handleDeleteGoalTask)

	s.router.Get("/v1/daily-tasks", s.handleDailyTasks)
	s.router.Post("/v1/daily-tasks", s.handleCreateDailyTask)
	s.router.Patch("/v1/daily-tasks/{id}", s.handleUpdateDailyTask)
	s.router.Delete("/v1/daily-tasks/{id}", s.handleDeleteDailyTask)

	s.router.Get("/v1/trackers", s.handleTrackers)
	s.router.Post("/v1/trackers", s.handleCreateTracker)
	s.router.Patch("/v1/trackers/{id}", s.handleUpdateTracker)
	s.router.Delete("/v1/trackers/{id}", s.handleDeleteTracker)
	s.router.Put("/v1/trackers/{id}/entries", s.handleUpsertTrackerEntry)
	s.router.Get("/v1/trackers/{id}/entries", s.handleTrackerEntries)
	s.router.Get("/v1/trackers/entries", s.handleAllTrackerEntries)

	s.router.Get("/v1/insights", s.handleInsightHistory)
	s.router.Post("/v1/insights/ask", s.handleAskInsight)

	s.router.Get("/v1/logs", s.handleLogs)
}

func (s *Server) today() string {
	return s.now().Format(dateLayout)
}

func (s *Server) isoWeek() (int, int) {
	return s.now().ISOWeek()
}

func (s *Server) currentQuarter() string {
	return fmt.Sprintf("Q%d", (int(s.now().Month())-1)/3+1)
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeDomainError maps the error taxonomy onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var (
		notFound   *store.NotFoundError
		validation *store.ValidationError
		service    *insights.ServiceError
	)
	switch {
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, err)
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, err)
	case errors.As(err, &service):
		writeError(w, http.StatusBadGateway, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": common.LogEntries()})
}
