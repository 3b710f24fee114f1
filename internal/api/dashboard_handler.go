// File path: internal/api/dashboard_handler.go
package api

import (
	"net/http"

	"github.com/gjagils/Grip/internal/common"
	"github.com/gjagils/Grip/internal/streak"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()
	today := s.today()

	checkIn, err := s.store.CheckInByDate(ctx, today)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	year, week := s.isoWeek()
	review, err := s.store.WeekReview(ctx, year, week)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	goals, err := s.store.ActiveGoals(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	dates, err := s.store.CompletedCheckInDates(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	current := streak.Count(dates, s.now())
	logger.Debug("api: dashboard built", "date", today, "streak", current, "goals", len(goals))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"today":           today,
		"has_checkin":     checkIn != nil,
		"has_week_review": review != nil,
		"goals":           goals,
		"streak":          current,
		"year":            year,
		"week":            week,
	})
}

// handleFocus serves the narrow sidebar view: this week's priorities and
// the active goals for the current period.
func (s *Server) handleFocus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	year, week := s.isoWeek()
	quarter := s.currentQuarter()

	priorities, err := s.store.CurrentPriorities(ctx, year, week)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	quarterly, err := s.store.ActiveGoalsFor(ctx, "quarterly", s.now().Year(), quarter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	yearly, err := s.store.ActiveGoalsFor(ctx, "yearly", s.now().Year(), "")
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"priorities":      priorities,
		"quarterly_goals": quarterly,
		"yearly_goals":    yearly,
		"year":            year,
		"week":            week,
		"quarter":         quarter,
	})
}
