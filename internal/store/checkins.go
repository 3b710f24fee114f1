// File path: internal/store/checkins.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// AnswerInput is one typed answer in a check-in submission.
type AnswerInput struct {
	QuestionID int64  `json:"question_id"`
	Score      *int   `json:"score,omitempty"`
	Text       string `json:"text,omitempty"`
}

// CheckInByDate returns the check-in for the given ISO date, or nil when
// the day has none yet.
func (s *Store) CheckInByDate(ctx context.Context, date string) (*CheckIn, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	var checkIn CheckIn
	err := s.db.GetContext(ctx, &checkIn, `SELECT * FROM check_ins WHERE date = ?`, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select check-in: %w", err)
	}
	return &checkIn, nil
}

// CompletedCheckInDates returns the dates of completed check-ins, newest
// first, as the streak walk expects.
func (s *Store) CompletedCheckInDates(ctx context.Context) ([]string, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	dates := []string{}
	if err := s.db.SelectContext(ctx, &dates,
		`SELECT date FROM check_ins WHERE completed = 1 ORDER BY date DESC`); err != nil {
		return nil, fmt.Errorf("select check-in dates: %w", err)
	}
	return dates, nil
}

// SaveCheckIn stores the answers for one date in a single transaction.
// An existing check-in for the date is reused and its previous answers
// replaced; the check-in is marked completed either way.
func (s *Store) SaveCheckIn(ctx context.Context, date string, answers []AnswerInput) (int64, error) {
	if err := s.ensureReady(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(date) == "" {
		return 0, &ValidationError{Field: "date", Reason: "required"}
	}
	var checkInID int64
	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		types, err := questionTypes(ctx, tx)
		if err != nil {
			return err
		}
		for _, answer := range answers {
			if _, ok := types[answer.QuestionID]; !ok {
				return &NotFoundError{Entity: "question", ID: answer.QuestionID}
			}
		}

		err = tx.GetContext(ctx, &checkInID, `SELECT id FROM check_ins WHERE date = ?`, date)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			res, err := tx.ExecContext(ctx,
				`INSERT INTO check_ins (date, completed) VALUES (?, 1)`, date)
			if err != nil {
				return &PersistenceError{Op: "insert check-in", Err: err}
			}
			checkInID, err = res.LastInsertId()
			if err != nil {
				return &PersistenceError{Op: "insert check-in", Err: err}
			}
		case err != nil:
			return fmt.Errorf("select check-in: %w", err)
		default:
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM check_in_answers WHERE check_in_id = ?`, checkInID); err != nil {
				return &PersistenceError{Op: "clear check-in answers", Err: err}
			}
		}

		for _, answer := range answers {
			if types[answer.QuestionID] == "score" {
				if answer.Score == nil {
					continue
				}
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO check_in_answers (check_in_id, question_id, answer_score) VALUES (?, ?, ?)`,
					checkInID, answer.QuestionID, *answer.Score); err != nil {
					return &PersistenceError{Op: "insert answer", Err: err}
				}
				continue
			}
			if strings.TrimSpace(answer.Text) == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO check_in_answers (check_in_id, question_id, answer_text) VALUES (?, ?, ?)`,
				checkInID, answer.QuestionID, answer.Text); err != nil {
				return &PersistenceError{Op: "insert answer", Err: err}
			}
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE check_ins SET completed = 1 WHERE id = ?`, checkInID); err != nil {
			return &PersistenceError{Op: "complete check-in", Err: err}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return checkInID, nil
}

// CheckInHistory returns all answers joined with their questions, newest
// date first with core questions leading within each date.
func (s *Store) CheckInHistory(ctx context.Context) ([]AnswerRow, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	rows := []AnswerRow{}
	if err := s.db.SelectContext(ctx, &rows, `
                SELECT ci.date, q.text, q.type, q.is_core, ca.answer_text, ca.answer_score
                FROM check_in_answers ca
                JOIN check_ins ci ON ca.check_in_id = ci.id
                JOIN questions q ON ca.question_id = q.id
                ORDER BY ci.date DESC, q.is_core DESC, q.id`); err != nil {
		return nil, fmt.Errorf("select check-in history: %w", err)
	}
	return rows, nil
}

// AnswersSince returns answers for check-ins on or after the given ISO
// date, ordered for the insight context: newest date first, core first.
func (s *Store) AnswersSince(ctx context.Context, since string) ([]AnswerRow, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	rows := []AnswerRow{}
	if err := s.db.SelectContext(ctx, &rows, `
                SELECT ci.date, q.text, q.type, q.is_core, ca.answer_text, ca.answer_score
                FROM check_in_answers ca
                JOIN check_ins ci ON ca.check_in_id = ci.id
                JOIN questions q ON ca.question_id = q.id
                WHERE ci.date >= ?
                ORDER BY ci.date DESC, q.is_core DESC, q.id`, since); err != nil {
		return nil, fmt.Errorf("select recent answers: %w", err)
	}
	return rows, nil
}
