// File path: internal/store/types.go
package store

// Dates are stored as ISO 8601 strings (YYYY-MM-DD), timestamps as SQLite
// datetime('now') text, both matching the schema defaults.

// Question is a daily or weekly reflective question.
type Question struct {
	ID       int64  `db:"id" json:"id"`
	Text     string `db:"text" json:"text"`
	Type     string `db:"type" json:"type"`
	Category string `db:"category" json:"category"`
	IsCore   bool   `db:"is_core" json:"is_core"`
	Active   bool   `db:"active" json:"active"`
}

// CheckIn is the record of one day's answers, at most one per date.
type CheckIn struct {
	ID        int64  `db:"id" json:"id"`
	Date      string `db:"date" json:"date"`
	CreatedAt string `db:"created_at" json:"created_at"`
	Completed bool   `db:"completed" json:"completed"`
}

// CheckInAnswer holds a score or free text for one question of a check-in.
type CheckInAnswer struct {
	ID          int64   `db:"id" json:"id"`
	CheckInID   int64   `db:"check_in_id" json:"check_in_id"`
	QuestionID  int64   `db:"question_id" json:"question_id"`
	AnswerText  *string `db:"answer_text" json:"answer_text,omitempty"`
	AnswerScore *int    `db:"answer_score" json:"answer_score,omitempty"`
}

// AnswerRow is a check-in answer joined with its question, used for the
// history view and the insight context.
type AnswerRow struct {
	Date        string  `db:"date" json:"date"`
	Question    string  `db:"text" json:"question"`
	Type        string  `db:"type" json:"type"`
	IsCore      bool    `db:"is_core" json:"is_core"`
	AnswerText  *string `db:"answer_text" json:"answer_text,omitempty"`
	AnswerScore *int    `db:"answer_score" json:"answer_score,omitempty"`
}

// WeekReview is the weekly reflection keyed by ISO year and week number.
type WeekReview struct {
	ID                 int64  `db:"id" json:"id"`
	Year               int    `db:"year" json:"year"`
	WeekNumber         int    `db:"week_number" json:"week_number"`
	Score              *int   `db:"score" json:"score,omitempty"`
	WentWell           string `db:"went_well" json:"went_well"`
	Improve            string `db:"improve" json:"improve"`
	OnTrackGoals       *int   `db:"on_track_goals" json:"on_track_goals,omitempty"`
	PrioritiesNextWeek string `db:"priorities_next_week" json:"priorities_next_week"`
	CreatedAt          string `db:"created_at" json:"created_at"`
}

// Goal is a yearly or quarterly goal.
type Goal struct {
	ID          int64   `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	Description string  `db:"description" json:"description"`
	Type        string  `db:"type" json:"type"`
	Quarter     *string `db:"quarter" json:"quarter,omitempty"`
	Year        int     `db:"year" json:"year"`
	Status      string  `db:"status" json:"status"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
	UpdatedAt   string  `db:"updated_at" json:"updated_at"`
}

// GoalUpdate is a free-text note on a goal, optionally linked to the
// check-in or week review it was written from.
type GoalUpdate struct {
	ID           int64  `db:"id" json:"id"`
	GoalID       int64  `db:"goal_id" json:"goal_id"`
	CheckInID    *int64 `db:"check_in_id" json:"check_in_id,omitempty"`
	WeekReviewID *int64 `db:"week_review_id" json:"week_review_id,omitempty"`
	Note         string `db:"note" json:"note"`
	CreatedAt    string `db:"created_at" json:"created_at"`
}

// GoalTask is a checklist item under a goal with a stable sort order.
type GoalTask struct {
	ID        int64  `db:"id" json:"id"`
	GoalID    int64  `db:"goal_id" json:"goal_id"`
	Title     string `db:"title" json:"title"`
	Completed bool   `db:"completed" json:"completed"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

// DailyTask is a one-off task for a specific date.
type DailyTask struct {
	ID        int64  `db:"id" json:"id"`
	Title     string `db:"title" json:"title"`
	Date      string `db:"date" json:"date"`
	Completed bool   `db:"completed" json:"completed"`
	CheckInID *int64 `db:"check_in_id" json:"check_in_id,omitempty"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

// Tracker is a user-defined recurring metric logged once per day.
type Tracker struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Unit      string `db:"unit" json:"unit"`
	Type      string `db:"type" json:"type"`
	Active    bool   `db:"active" json:"active"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

// TrackerEntry is one logged value per tracker per date.
type TrackerEntry struct {
	ID        int64   `db:"id" json:"id"`
	TrackerID int64   `db:"tracker_id" json:"tracker_id"`
	Date      string  `db:"date" json:"date"`
	Value     float64 `db:"value" json:"value"`
	CreatedAt string  `db:"created_at" json:"created_at"`
}

// TrackerEntryRow is a tracker entry joined with its tracker, used for the
// entries window and the insight context.
type TrackerEntryRow struct {
	Name  string  `db:"name" json:"name"`
	Unit  string  `db:"unit" json:"unit"`
	Date  string  `db:"date" json:"date"`
	Value float64 `db:"value" json:"value"`
}

// Insight is one stored prompt/response pair from the coaching collaborator.
type Insight struct {
	ID          int64  `db:"id" json:"id"`
	Prompt      string `db:"prompt" json:"prompt"`
	Response    string `db:"response" json:"response"`
	ContextType string `db:"context_type" json:"context_type"`
	CreatedAt   string `db:"created_at" json:"created_at"`
}
