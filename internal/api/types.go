// File path: internal/api/types.go
package api

import "github.com/gjagils/Grip/internal/store"

// checkInRequest is the typed check-in submission: answers are keyed by
// question id, never by form-field name.
type checkInRequest struct {
	Date    string              `json:"date,omitempty"`
	Answers []store.AnswerInput `json:"answers"`
}

type weekReviewRequest struct {
	Year               int    `json:"year,omitempty"`
	Week               int    `json:"week,omitempty"`
	Score              *int   `json:"score,omitempty"`
	WentWell           string `json:"went_well"`
	Improve            string `json:"improve"`
	OnTrackGoals       *int   `json:"on_track_goals,omitempty"`
	PrioritiesNextWeek string `json:"priorities_next_week"`
}

type goalUpdateRequest struct {
	Note         string `json:"note"`
	CheckInID    *int64 `json:"check_in_id,omitempty"`
	WeekReviewID *int64 `json:"week_review_id,omitempty"`
}

type goalTaskRequest struct {
	Title string `json:"title"`
}

type goalTaskPatchRequest struct {
	Completed *bool `json:"completed,omitempty"`
}

type dailyTaskRequest struct {
	Title string `json:"title"`
	Date  string `json:"date,omitempty"`
}

type dailyTaskPatchRequest struct {
	Completed *bool  `json:"completed,omitempty"`
	CheckInID *int64 `json:"check_in_id,omitempty"`
}

type trackerEntryRequest struct {
	Date  string   `json:"date,omitempty"`
	Value *float64 `json:"value"`
}

type askRequest struct {
	Question    string `json:"question"`
	ContextType string `json:"context_type,omitempty"`
}

// checkInDay groups one date's answers for the history view.
type checkInDay struct {
	Date    string            `json:"date"`
	Answers []store.AnswerRow `json:"answers"`
}
