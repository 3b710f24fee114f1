// File path: internal/store/goals.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// GoalInput carries the fields of a goal creation.
type GoalInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Quarter     *string `json:"quarter,omitempty"`
	Year        int     `json:"year"`
}

// GoalPatch is a partial goal update; nil fields are left untouched.
type GoalPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// Goals returns every goal ordered for display: active first, yearly
// before quarterly, newest year first.
func (s *Store) Goals(ctx context.Context) ([]Goal, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	goals := []Goal{}
	if err := s.db.SelectContext(ctx, &goals,
		`SELECT * FROM goals ORDER BY status, type, year DESC, quarter`); err != nil {
		return nil, fmt.Errorf("select goals: %w", err)
	}
	return goals, nil
}

// ActiveGoals returns active goals ordered by type, year and quarter.
func (s *Store) ActiveGoals(ctx context.Context) ([]Goal, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	goals := []Goal{}
	if err := s.db.SelectContext(ctx, &goals,
		`SELECT * FROM goals WHERE status = 'active' ORDER BY type, year, quarter`); err != nil {
		return nil, fmt.Errorf("select active goals: %w", err)
	}
	return goals, nil
}

// ActiveGoalsFor returns active goals of one type scoped to the current
// period, as shown in the focus view.
func (s *Store) ActiveGoalsFor(ctx context.Context, goalType string, year int, quarter string) ([]Goal, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	goals := []Goal{}
	if goalType == "quarterly" {
		if err := s.db.SelectContext(ctx, &goals,
			`SELECT * FROM goals WHERE status = 'active' AND type = 'quarterly' AND year = ? AND quarter = ? ORDER BY id`,
			year, quarter); err != nil {
			return nil, fmt.Errorf("select quarterly goals: %w", err)
		}
		return goals, nil
	}
	if err := s.db.SelectContext(ctx, &goals,
		`SELECT * FROM goals WHERE status = 'active' AND type = 'yearly' AND year = ? ORDER BY id`,
		year); err != nil {
		return nil, fmt.Errorf("select yearly goals: %w", err)
	}
	return goals, nil
}

// CreateGoal inserts a new active goal.
func (s *Store) CreateGoal(ctx context.Context, input GoalInput) (*Goal, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "required"}
	}
	if input.Type != "yearly" && input.Type != "quarterly" {
		return nil, &ValidationError{Field: "type", Reason: "must be yearly or quarterly"}
	}
	if input.Year <= 0 {
		return nil, &ValidationError{Field: "year", Reason: "required"}
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO goals (title, description, type, quarter, year) VALUES (?, ?, ?, ?, ?)`,
		input.Title, input.Description, input.Type, input.Quarter, input.Year)
	if err != nil {
		return nil, &PersistenceError{Op: "insert goal", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, &PersistenceError{Op: "insert goal", Err: err}
	}
	return s.goalByID(ctx, id)
}

// UpdateGoal applies a partial update and bumps updated_at.
func (s *Store) UpdateGoal(ctx context.Context, id int64, patch GoalPatch) (*Goal, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	sets := []string{}
	args := []interface{}{}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, &ValidationError{Field: "title", Reason: "required"}
		}
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Status != nil {
		switch *patch.Status {
		case "active", "completed", "abandoned":
		default:
			return nil, &ValidationError{Field: "status", Reason: "must be active, completed or abandoned"}
		}
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if len(sets) > 0 {
		sets = append(sets, "updated_at = datetime('now')")
		args = append(args, id)
		res, err := s.db.ExecContext(ctx,
			fmt.Sprintf(`UPDATE goals SET %s WHERE id = ?`, strings.Join(sets, ", ")), args...)
		if err != nil {
			return nil, &PersistenceError{Op: "update goal", Err: err}
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, &PersistenceError{Op: "update goal", Err: err}
		}
		if affected == 0 {
			return nil, &NotFoundError{Entity: "goal", ID: id}
		}
	}
	return s.goalByID(ctx, id)
}

func (s *Store) goalByID(ctx context.Context, id int64) (*Goal, error) {
	var goal Goal
	err := s.db.GetContext(ctx, &goal, `SELECT * FROM goals WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "goal", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("select goal: %w", err)
	}
	return &goal, nil
}

// AddGoalUpdate attaches a note to a goal, optionally linked to a
// check-in or week review.
func (s *Store) AddGoalUpdate(ctx context.Context, goalID int64, note string, checkInID, weekReviewID *int64) (*GoalUpdate, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if _, err := s.goalByID(ctx, goalID); err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO goal_updates (goal_id, check_in_id, week_review_id, note) VALUES (?, ?, ?, ?)`,
		goalID, checkInID, weekReviewID, note)
	if err != nil {
		return nil, &PersistenceError{Op: "insert goal update", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, &PersistenceError{Op: "insert goal update", Err: err}
	}
	var update GoalUpdate
	if err := s.db.GetContext(ctx, &update, `SELECT * FROM goal_updates WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("select goal update: %w", err)
	}
	return &update, nil
}

// GoalUpdates returns the notes for a goal, newest first.
func (s *Store) GoalUpdates(ctx context.Context, goalID int64) ([]GoalUpdate, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	updates := []GoalUpdate{}
	if err := s.db.SelectContext(ctx, &updates,
		`SELECT * FROM goal_updates WHERE goal_id = ? ORDER BY created_at DESC, id DESC`, goalID); err != nil {
		return nil, fmt.Errorf("select goal updates: %w", err)
	}
	return updates, nil
}

// TasksForGoal returns a goal's checklist in sort order.
func (s *Store) TasksForGoal(ctx context.Context, goalID int64) ([]GoalTask, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	tasks := []GoalTask{}
	if err := s.db.SelectContext(ctx, &tasks,
		`SELECT * FROM goal_tasks WHERE goal_id = ? ORDER BY sort_order, id`, goalID); err != nil {
		return nil, fmt.Errorf("select goal tasks: %w", err)
	}
	return tasks, nil
}

// AddGoalTask appends a task to the end of a goal's checklist.
func (s *Store) AddGoalTask(ctx context.Context, goalID int64, title string) (*GoalTask, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "required"}
	}
	var task GoalTask
	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var exists int
		err := tx.GetContext(ctx, &exists, `SELECT 1 FROM goals WHERE id = ?`, goalID)
		if errors.Is(err, sql.ErrNoRows) {
			return &NotFoundError{Entity: "goal", ID: goalID}
		}
		if err != nil {
			return fmt.Errorf("select goal: %w", err)
		}
		var next int
		if err := tx.GetContext(ctx, &next,
			`SELECT COALESCE(MAX(sort_order) + 1, 0) FROM goal_tasks WHERE goal_id = ?`, goalID); err != nil {
			return fmt.Errorf("next sort order: %w", err)
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO goal_tasks (goal_id, title, sort_order) VALUES (?, ?, ?)`,
			goalID, title, next)
		if err != nil {
			return &PersistenceError{Op: "insert goal task", Err: err}
		}
		id, err := res.LastInsertId()
		if err != nil {
			return &PersistenceError{Op: "insert goal task", Err: err}
		}
		return tx.GetContext(ctx, &task, `SELECT * FROM goal_tasks WHERE id = ?`, id)
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// SetGoalTaskCompleted toggles a checklist item.
func (s *Store) SetGoalTaskCompleted(ctx context.Context, id int64, completed bool) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE goal_tasks SET completed = ? WHERE id = ?`, completed, id)
	if err != nil {
		return &PersistenceError{Op: "update goal task", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &PersistenceError{Op: "update goal task", Err: err}
	}
	if affected == 0 {
		return &NotFoundError{Entity: "goal task", ID: id}
	}
	return nil
}

// DeleteGoalTask removes exactly one checklist item; sibling sort orders
// are left untouched so relative order is stable.
func (s *Store) DeleteGoalTask(ctx context.Context, id int64) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM goal_tasks WHERE id = ?`, id)
	if err != nil {
		return &PersistenceError{Op: "delete goal task", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &PersistenceError{Op: "delete goal task", Err: err}
	}
	if affected == 0 {
		return &NotFoundError{Entity: "goal task", ID: id}
	}
	return nil
}
