// File path: internal/store/trackers.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// TrackerInput carries the fields of a tracker creation.
type TrackerInput struct {
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	Type      string `json:"type"`
	SortOrder int    `json:"sort_order"`
}

// TrackerPatch is a partial tracker update; nil fields are left untouched.
type TrackerPatch struct {
	Name      *string `json:"name,omitempty"`
	Unit      *string `json:"unit,omitempty"`
	Active    *bool   `json:"active,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}

// Trackers returns trackers in sort order, optionally only active ones.
func (s *Store) Trackers(ctx context.Context, activeOnly bool) ([]Tracker, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	trackers := []Tracker{}
	query := `SELECT * FROM trackers ORDER BY sort_order, id`
	if activeOnly {
		query = `SELECT * FROM trackers WHERE active = 1 ORDER BY sort_order, id`
	}
	if err := s.db.SelectContext(ctx, &trackers, query); err != nil {
		return nil, fmt.Errorf("select trackers: %w", err)
	}
	return trackers, nil
}

// CreateTracker adds a new metric to log.
func (s *Store) CreateTracker(ctx context.Context, input TrackerInput) (*Tracker, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if input.Type == "" {
		input.Type = "number"
	}
	if input.Type != "number" && input.Type != "boolean" {
		return nil, &ValidationError{Field: "type", Reason: "must be number or boolean"}
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO trackers (name, unit, type, sort_order) VALUES (?, ?, ?, ?)`,
		input.Name, input.Unit, input.Type, input.SortOrder)
	if err != nil {
		return nil, &PersistenceError{Op: "insert tracker", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, &PersistenceError{Op: "insert tracker", Err: err}
	}
	return s.trackerByID(ctx, id)
}

// UpdateTracker applies a partial tracker update.
func (s *Store) UpdateTracker(ctx context.Context, id int64, patch TrackerPatch) (*Tracker, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	sets := []string{}
	args := []interface{}{}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, &ValidationError{Field: "name", Reason: "required"}
		}
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Unit != nil {
		sets = append(sets, "unit = ?")
		args = append(args, *patch.Unit)
	}
	if patch.Active != nil {
		sets = append(sets, "active = ?")
		args = append(args, *patch.Active)
	}
	if patch.SortOrder != nil {
		sets = append(sets, "sort_order = ?")
		args = append(args, *patch.SortOrder)
	}
	if len(sets) > 0 {
		args = append(args, id)
		res, err := s.db.ExecContext(ctx,
			fmt.Sprintf(`UPDATE trackers SET %s WHERE id = ?`, strings.Join(sets, ", ")), args...)
		if err != nil {
			return nil, &PersistenceError{Op: "update tracker", Err: err}
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, &PersistenceError{Op: "update tracker", Err: err}
		}
		if affected == 0 {
			return nil, &NotFoundError{Entity: "tracker", ID: id}
		}
	}
	return s.trackerByID(ctx, id)
}

// DeleteTracker removes a tracker; its entries cascade away with it.
func (s *Store) DeleteTracker(ctx context.Context, id int64) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM trackers WHERE id = ?`, id)
	if err != nil {
		return &PersistenceError{Op: "delete tracker", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &PersistenceError{Op: "delete tracker", Err: err}
	}
	if affected == 0 {
		return &NotFoundError{Entity: "tracker", ID: id}
	}
	return nil
}

func (s *Store) trackerByID(ctx context.Context, id int64) (*Tracker, error) {
	var tracker Tracker
	err := s.db.GetContext(ctx, &tracker, `SELECT * FROM trackers WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "tracker", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("select tracker: %w", err)
	}
	return &tracker, nil
}

// UpsertTrackerEntry records one value per tracker per date; logging the
// same day twice overwrites the previous value.
func (s *Store) UpsertTrackerEntry(ctx context.Context, trackerID int64, date string, value float64) (*TrackerEntry, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(date) == "" {
		return nil, &ValidationError{Field: "date", Reason: "required"}
	}
	if _, err := s.trackerByID(ctx, trackerID); err != nil {
		return nil, err
	}
	if _, err := s.db.ExecContext(ctx, `
                INSERT INTO tracker_entries (tracker_id, date, value)
                VALUES (?, ?, ?)
                ON CONFLICT(tracker_id, date) DO UPDATE SET value = excluded.value`,
		trackerID, date, value); err != nil {
		return nil, &PersistenceError{Op: "upsert tracker entry", Err: err}
	}
	var entry TrackerEntry
	if err := s.db.GetContext(ctx, &entry,
		`SELECT * FROM tracker_entries WHERE tracker_id = ? AND date = ?`, trackerID, date); err != nil {
		return nil, fmt.Errorf("select tracker entry: %w", err)
	}
	return &entry, nil
}

// TrackerEntriesSince returns entries on or after the given ISO date
// joined with their trackers, grouped by tracker name with newest dates
// first, as the insight context expects.
func (s *Store) TrackerEntriesSince(ctx context.Context, since string) ([]TrackerEntryRow, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	rows := []TrackerEntryRow{}
	if err := s.db.SelectContext(ctx, &rows, `
                SELECT t.name, t.unit, te.date, te.value
                FROM tracker_entries te
                JOIN trackers t ON te.tracker_id = t.id
                WHERE te.date >= ?
                ORDER BY t.name, te.date DESC`, since); err != nil {
		return nil, fmt.Errorf("select tracker entries: %w", err)
	}
	return rows, nil
}

// EntriesForTracker returns one tracker's entries, newest first.
func (s *Store) EntriesForTracker(ctx context.Context, trackerID int64, since string) ([]TrackerEntry, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	entries := []TrackerEntry{}
	if err := s.db.SelectContext(ctx, &entries,
		`SELECT * FROM tracker_entries WHERE tracker_id = ? AND date >= ? ORDER BY date DESC`,
		trackerID, since); err != nil {
		return nil, fmt.Errorf("select tracker entries: %w", err)
	}
	return entries, nil
}
