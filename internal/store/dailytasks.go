// File path: internal/store/dailytasks.go
package store

import (
	"context"
	"fmt"
	"strings"
)

// DailyTasks returns the tasks planned for one date in creation order.
func (s *Store) DailyTasks(ctx context.Context, date string) ([]DailyTask, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	tasks := []DailyTask{}
	if err := s.db.SelectContext(ctx, &tasks,
		`SELECT * FROM daily_tasks WHERE date = ? ORDER BY id`, date); err != nil {
		return nil, fmt.Errorf("select daily tasks: %w", err)
	}
	return tasks, nil
}

// CreateDailyTask adds a task for the given date.
func (s *Store) CreateDailyTask(ctx context.Context, title, date string) (*DailyTask, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "required"}
	}
	if strings.TrimSpace(date) == "" {
		return nil, &ValidationError{Field: "date", Reason: "required"}
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO daily_tasks (title, date) VALUES (?, ?)`, title, date)
	if err != nil {
		return nil, &PersistenceError{Op: "insert daily task", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, &PersistenceError{Op: "insert daily task", Err: err}
	}
	var task DailyTask
	if err := s.db.GetContext(ctx, &task, `SELECT * FROM daily_tasks WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("select daily task: %w", err)
	}
	return &task, nil
}

// SetDailyTaskCompleted toggles a daily task, optionally recording the
// check-in that completed it.
func (s *Store) SetDailyTaskCompleted(ctx context.Context, id int64, completed bool, checkInID *int64) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE daily_tasks SET completed = ?, check_in_id = ? WHERE id = ?`,
		completed, checkInID, id)
	if err != nil {
		return &PersistenceError{Op: "update daily task", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &PersistenceError{Op: "update daily task", Err: err}
	}
	if affected == 0 {
		return &NotFoundError{Entity: "daily task", ID: id}
	}
	return nil
}

// DeleteDailyTask removes a daily task.
func (s *Store) DeleteDailyTask(ctx context.Context, id int64) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM daily_tasks WHERE id = ?`, id)
	if err != nil {
		return &PersistenceError{Op: "delete daily task", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &PersistenceError{Op: "delete daily task", Err: err}
	}
	if affected == 0 {
		return &NotFoundError{Entity: "daily task", ID: id}
	}
	return nil
}
