// File path: internal/api/review_handler.go
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gjagils/Grip/internal/common"
	"github.com/gjagils/Grip/internal/store"
)

// handleWeekReview returns the current week's review (nil when not yet
// written) alongside the weekly questions.
func (s *Server) handleWeekReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	year, week := s.isoWeek()
	weekly, err := s.store.WeeklyQuestions(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	review, err := s.store.WeekReview(ctx, year, week)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"year":      year,
		"week":      week,
		"questions": weekly,
		"existing":  review,
	})
}

// handleSaveWeekReview upserts the review for (year, week); omitted
// year/week default to the current ISO week.
func (s *Server) handleSaveWeekReview(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()
	var req weekReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	year, week := req.Year, req.Week
	if year == 0 || week == 0 {
		year, week = s.isoWeek()
	}
	review, err := s.store.SaveWeekReview(ctx, year, week, store.WeekReviewInput{
		Score:              req.Score,
		WentWell:           req.WentWell,
		Improve:            req.Improve,
		OnTrackGoals:       req.OnTrackGoals,
		PrioritiesNextWeek: req.PrioritiesNextWeek,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	logger.Info("api: week review saved", "year", year, "week", week)
	writeJSON(w, http.StatusOK, review)
}
