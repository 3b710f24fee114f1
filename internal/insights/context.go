// File path: internal/insights/context.go

// Package insights turns accumulated check-in data into a prompt for the
// external coaching model and asks it questions.
package insights

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gjagils/Grip/internal/store"
)

const dateLayout = "2006-01-02"

// NoDataPlaceholder is returned when no check-ins, reviews, goals or
// tracker entries exist anywhere.
const NoDataPlaceholder = "Nog geen data beschikbaar."

// ContextConfig controls the context serialization window.
type ContextConfig struct {
	// WindowDays is the trailing window for check-ins and tracker data.
	WindowDays int
	// MaxWeekReviews caps how many recent reviews are included.
	MaxWeekReviews int
}

// DefaultContextConfig returns the standard 30-day window with up to
// four week reviews.
func DefaultContextConfig() ContextConfig {
	return ContextConfig{WindowDays: 30, MaxWeekReviews: 4}
}

// ContextBuilder serializes recent store data into the section-headed
// text blob handed to the coaching model.
type ContextBuilder struct {
	store *store.Store
	cfg   ContextConfig
}

func NewContextBuilder(st *store.Store, cfg ContextConfig) (*ContextBuilder, error) {
	if st == nil {
		return nil, errors.New("store required")
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 30
	}
	if cfg.MaxWeekReviews <= 0 {
		cfg.MaxWeekReviews = 4
	}
	return &ContextBuilder{store: st, cfg: cfg}, nil
}

// Build produces the context text for the trailing window ending at
// today. Sections with no data are omitted; when nothing exists at all
// the fixed placeholder is returned.
func (b *ContextBuilder) Build(ctx context.Context, today time.Time) (string, error) {
	since := today.AddDate(0, 0, -b.cfg.WindowDays).Format(dateLayout)
	var parts []string

	answers, err := b.store.AnswersSince(ctx, since)
	if err != nil {
		return "", err
	}
	if len(answers) > 0 {
		parts = append(parts, "## Recente check-ins")
		currentDate := ""
		for _, row := range answers {
			if row.Date != currentDate {
				currentDate = row.Date
				parts = append(parts, fmt.Sprintf("\n### %s", currentDate))
			}
			parts = append(parts, fmt.Sprintf("- %s: %s", row.Question, formatAnswer(row)))
		}
	}

	reviews, err := b.store.LatestWeekReviews(ctx, b.cfg.MaxWeekReviews)
	if err != nil {
		return "", err
	}
	if len(reviews) > 0 {
		parts = append(parts, "\n## Recente weekreviews")
		for _, review := range reviews {
			parts = append(parts, fmt.Sprintf("\n### Week %d (%d)", review.WeekNumber, review.Year))
			if review.Score != nil && *review.Score != 0 {
				parts = append(parts, fmt.Sprintf("- Score: %d/10", *review.Score))
			}
			if review.WentWell != "" {
				parts = append(parts, "- Ging goed: "+review.WentWell)
			}
			if review.Improve != "" {
				parts = append(parts, "- Verbeteren: "+review.Improve)
			}
			if review.PrioritiesNextWeek != "" {
				parts = append(parts, "- Prioriteiten: "+review.PrioritiesNextWeek)
			}
		}
	}

	goals, err := b.store.ActiveGoals(ctx)
	if err != nil {
		return "", err
	}
	if len(goals) > 0 {
		parts = append(parts, "\n## Actieve doelen")
		for _, goal := range goals {
			label := fmt.Sprintf("%s %d", goal.Type, goal.Year)
			if goal.Quarter != nil && *goal.Quarter != "" {
				label += " " + *goal.Quarter
			}
			parts = append(parts, fmt.Sprintf("- [%s] %s", label, goal.Title))
			if goal.Description != "" {
				parts = append(parts, "  "+goal.Description)
			}
			tasks, err := b.store.TasksForGoal(ctx, goal.ID)
			if err != nil {
				return "", err
			}
			for _, task := range tasks {
				status := " "
				if task.Completed {
					status = "x"
				}
				parts = append(parts, fmt.Sprintf("  [%s] %s", status, task.Title))
			}
		}
	}

	entries, err := b.store.TrackerEntriesSince(ctx, since)
	if err != nil {
		return "", err
	}
	if len(entries) > 0 {
		parts = append(parts, "\n## Tracker data")
		currentTracker := ""
		for _, entry := range entries {
			name := entry.Name
			if entry.Unit != "" {
				name += fmt.Sprintf(" (%s)", entry.Unit)
			}
			if name != currentTracker {
				currentTracker = name
				parts = append(parts, fmt.Sprintf("\n### %s", name))
			}
			parts = append(parts, fmt.Sprintf("- %s: %s", entry.Date, formatValue(entry.Value)))
		}
	}

	if len(parts) == 0 {
		return NoDataPlaceholder, nil
	}
	return strings.Join(parts, "\n"), nil
}

func formatAnswer(row store.AnswerRow) string {
	if row.Type == "score" {
		if row.AnswerScore == nil {
			return ""
		}
		return strconv.Itoa(*row.AnswerScore)
	}
	if row.AnswerText == nil {
		return ""
	}
	return *row.AnswerText
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
