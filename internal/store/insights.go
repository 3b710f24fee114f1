// File path: internal/store/insights.go
package store

import (
	"context"
	"fmt"
	"strings"
)

// RecordInsight appends a prompt/response pair to the insight log.
func (s *Store) RecordInsight(ctx context.Context, prompt, response, contextType string) (*Insight, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, &ValidationError{Field: "prompt", Reason: "required"}
	}
	switch contextType {
	case "daily", "weekly", "quarterly", "general":
	case "":
		contextType = "general"
	default:
		return nil, &ValidationError{Field: "context_type", Reason: "must be daily, weekly, quarterly or general"}
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO insights (prompt, response, context_type) VALUES (?, ?, ?)`,
		prompt, response, contextType)
	if err != nil {
		return nil, &PersistenceError{Op: "insert insight", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, &PersistenceError{Op: "insert insight", Err: err}
	}
	var insight Insight
	if err := s.db.GetContext(ctx, &insight, `SELECT * FROM insights WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("select insight: %w", err)
	}
	return &insight, nil
}

// InsightHistory returns the most recent insights, newest first.
func (s *Store) InsightHistory(ctx context.Context, limit int) ([]Insight, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	insights := []Insight{}
	if err := s.db.SelectContext(ctx, &insights,
		`SELECT * FROM insights ORDER BY created_at DESC, id DESC LIMIT ?`, limit); err != nil {
		return nil, fmt.Errorf("select insights: %w", err)
	}
	return insights, nil
}
