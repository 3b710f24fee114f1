// File path: internal/api/checkin_handler.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gjagils/Grip/internal/common"
	"github.com/gjagils/Grip/internal/questions"
)

// handleCheckInQuestions returns the deterministic question set for a
// date (default today): all core daily questions plus the day's rotation.
func (s *Server) handleCheckInQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	forDate := s.now()
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid date %q", raw))
			return
		}
		forDate = parsed
	}
	daily, err := s.store.ActiveDailyQuestions(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	selected := questions.DailySet(forDate, daily)
	existing, err := s.store.CheckInByDate(ctx, forDate.Format(dateLayout))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":         forDate.Format(dateLayout),
		"questions":    selected,
		"already_done": existing != nil,
	})
}

// handleSaveCheckIn stores a day's answers; resubmitting replaces the
// previous answers for that date.
func (s *Server) handleSaveCheckIn(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()
	var req checkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = s.today()
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid date %q", date))
		return
	}
	id, err := s.store.SaveCheckIn(ctx, date, req.Answers)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	logger.Info("api: check-in saved", "date", date, "answers", len(req.Answers))
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "date": date})
}

func (s *Server) handleCheckInHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rows, err := s.store.CheckInHistory(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	history := []checkInDay{}
	for _, row := range rows {
		if len(history) == 0 || history[len(history)-1].Date != row.Date {
			history = append(history, checkInDay{Date: row.Date})
		}
		last := &history[len(history)-1]
		last.Answers = append(last.Answers, row)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": history})
}
