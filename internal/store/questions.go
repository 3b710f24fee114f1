// File path: internal/store/questions.go
package store

import (
	"context"
	"fmt"
)

// ActiveDailyQuestions returns all active daily questions in id order,
// core questions included.
func (s *Store) ActiveDailyQuestions(ctx context.Context) ([]Question, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	questions := []Question{}
	if err := s.db.SelectContext(ctx, &questions,
		`SELECT * FROM questions WHERE category = 'daily' AND active = 1 ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select daily questions: %w", err)
	}
	return questions, nil
}

// WeeklyQuestions returns all active weekly review questions in id order.
func (s *Store) WeeklyQuestions(ctx context.Context) ([]Question, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	questions := []Question{}
	if err := s.db.SelectContext(ctx, &questions,
		`SELECT * FROM questions WHERE category = 'weekly' AND active = 1 ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select weekly questions: %w", err)
	}
	return questions, nil
}

type sqlxQueryer interface {
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// questionTypes maps every question id to its answer type.
func questionTypes(ctx context.Context, q sqlxQueryer) (map[int64]string, error) {
	rows := []struct {
		ID   int64  `db:"id"`
		Type string `db:"type"`
	}{}
	if err := q.SelectContext(ctx, &rows, `SELECT id, type FROM questions`); err != nil {
		return nil, fmt.Errorf("select question types: %w", err)
	}
	types := make(map[int64]string, len(rows))
	for _, row := range rows {
		types[row.ID] = row.Type
	}
	return types, nil
}
