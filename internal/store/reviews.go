// File path: internal/store/reviews.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// WeekReviewInput carries the fields of a week review save.
type WeekReviewInput struct {
	Score              *int   `json:"score,omitempty"`
	WentWell           string `json:"went_well"`
	Improve            string `json:"improve"`
	OnTrackGoals       *int   `json:"on_track_goals,omitempty"`
	PrioritiesNextWeek string `json:"priorities_next_week"`
}

// WeekReview returns the review for the given ISO year and week, or nil
// when none has been saved.
func (s *Store) WeekReview(ctx context.Context, year, week int) (*WeekReview, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	var review WeekReview
	err := s.db.GetContext(ctx, &review,
		`SELECT * FROM week_reviews WHERE year = ? AND week_number = ?`, year, week)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select week review: %w", err)
	}
	return &review, nil
}

// SaveWeekReview upserts the review for (year, week); saving twice for the
// same week updates the existing row.
func (s *Store) SaveWeekReview(ctx context.Context, year, week int, input WeekReviewInput) (*WeekReview, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if year <= 0 || week <= 0 || week > 53 {
		return nil, &ValidationError{Field: "week", Reason: "invalid year/week pair"}
	}
	if _, err := s.db.ExecContext(ctx, `
                INSERT INTO week_reviews (year, week_number, score, went_well, improve, on_track_goals, priorities_next_week)
                VALUES (?, ?, ?, ?, ?, ?, ?)
                ON CONFLICT(year, week_number) DO UPDATE SET
                        score = excluded.score,
                        went_well = excluded.went_well,
                        improve = excluded.improve,
                        on_track_goals = excluded.on_track_goals,
                        priorities_next_week = excluded.priorities_next_week`,
		year, week, input.Score, input.WentWell, input.Improve, input.OnTrackGoals, input.PrioritiesNextWeek); err != nil {
		return nil, &PersistenceError{Op: "upsert week review", Err: err}
	}
	return s.WeekReview(ctx, year, week)
}

// LatestWeekReviews returns up to limit reviews, most recent week first.
func (s *Store) LatestWeekReviews(ctx context.Context, limit int) ([]WeekReview, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 4
	}
	reviews := []WeekReview{}
	if err := s.db.SelectContext(ctx, &reviews,
		`SELECT * FROM week_reviews ORDER BY year DESC, week_number DESC LIMIT ?`, limit); err != nil {
		return nil, fmt.Errorf("select week reviews: %w", err)
	}
	return reviews, nil
}

// CurrentPriorities returns the stored priorities for the given week,
// falling back to the most recent review when the week has none yet.
func (s *Store) CurrentPriorities(ctx context.Context, year, week int) (string, error) {
	review, err := s.WeekReview(ctx, year, week)
	if err != nil {
		return "", err
	}
	if review != nil {
		return review.PrioritiesNextWeek, nil
	}
	latest, err := s.LatestWeekReviews(ctx, 1)
	if err != nil {
		return "", err
	}
	if len(latest) == 0 {
		return "", nil
	}
	return latest[0].PrioritiesNextWeek, nil
}
