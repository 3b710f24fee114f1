// File path: internal/store/store.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store wraps a pooled sqlx.DB connection to the SQLite database.
type Store struct {
	db *sqlx.DB
}

// Open constructs a Store backed by the SQLite database at the provided
// path. The schema is migrated and the default questions are seeded on
// first use.
func Open(path string) (*Store, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		cfg.Path = trimmed
	}
	return OpenWithConfig(cfg)
}

// OpenWithConfig constructs a Store using the provided configuration.
func OpenWithConfig(cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("store path required")
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve store path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	busy := int(cfg.BusyTimeout / time.Millisecond)
	if busy <= 0 {
		busy = 5000
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", abs, busy)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.BusyTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	if err := store.seedQuestions(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

var errNilStore = errors.New("store not initialised")

func (s *Store) ensureReady() error {
	if s == nil || s.db == nil {
		return errNilStore
	}
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	for i, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute schema statement %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}

// withTx runs fn inside a transaction, rolling back on error.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS questions (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                text TEXT NOT NULL,
                type TEXT NOT NULL CHECK (type IN ('score', 'open')),
                category TEXT NOT NULL CHECK (category IN ('daily', 'weekly')),
                is_core INTEGER NOT NULL DEFAULT 0,
                active INTEGER NOT NULL DEFAULT 1
        );`,
	`CREATE TABLE IF NOT EXISTS check_ins (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                date TEXT NOT NULL UNIQUE,
                created_at TEXT NOT NULL DEFAULT (datetime('now')),
                completed INTEGER NOT NULL DEFAULT 0
        );`,
	`CREATE TABLE IF NOT EXISTS check_in_answers (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                check_in_id INTEGER NOT NULL REFERENCES check_ins(id),
                question_id INTEGER NOT NULL REFERENCES questions(id),
                answer_text TEXT,
                answer_score INTEGER
        );`,
	`CREATE TABLE IF NOT EXISTS week_reviews (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                year INTEGER NOT NULL,
                week_number INTEGER NOT NULL,
                score INTEGER,
                went_well TEXT,
                improve TEXT,
                on_track_goals INTEGER,
                priorities_next_week TEXT,
                created_at TEXT NOT NULL DEFAULT (datetime('now')),
                UNIQUE(year, week_number)
        );`,
	`CREATE TABLE IF NOT EXISTS goals (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                title TEXT NOT NULL,
                description TEXT,
                type TEXT NOT NULL CHECK (type IN ('yearly', 'quarterly')),
                quarter TEXT CHECK (quarter IN ('Q1', 'Q2', 'Q3', 'Q4')),
                year INTEGER NOT NULL,
                status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'completed', 'abandoned')),
                created_at TEXT NOT NULL DEFAULT (datetime('now')),
                updated_at TEXT NOT NULL DEFAULT (datetime('now'))
        );`,
	`CREATE TABLE IF NOT EXISTS goal_updates (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                goal_id INTEGER NOT NULL REFERENCES goals(id),
                check_in_id INTEGER REFERENCES check_ins(id),
                week_review_id INTEGER REFERENCES week_reviews(id),
                note TEXT,
                created_at TEXT NOT NULL DEFAULT (datetime('now'))
        );`,
	`CREATE TABLE IF NOT EXISTS goal_tasks (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                goal_id INTEGER NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
                title TEXT NOT NULL,
                completed INTEGER NOT NULL DEFAULT 0,
                sort_order INTEGER NOT NULL DEFAULT 0,
                created_at TEXT NOT NULL DEFAULT (datetime('now'))
        );`,
	`CREATE TABLE IF NOT EXISTS daily_tasks (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                title TEXT NOT NULL,
                date TEXT NOT NULL,
                completed INTEGER NOT NULL DEFAULT 0,
                check_in_id INTEGER REFERENCES check_ins(id),
                created_at TEXT NOT NULL DEFAULT (datetime('now'))
        );`,
	`CREATE TABLE IF NOT EXISTS trackers (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                name TEXT NOT NULL,
                unit TEXT NOT NULL DEFAULT '',
                type TEXT NOT NULL DEFAULT 'number' CHECK (type IN ('number', 'boolean')),
                active INTEGER NOT NULL DEFAULT 1,
                sort_order INTEGER NOT NULL DEFAULT 0,
                created_at TEXT NOT NULL DEFAULT (datetime('now'))
        );`,
	`CREATE TABLE IF NOT EXISTS tracker_entries (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                tracker_id INTEGER NOT NULL REFERENCES trackers(id) ON DELETE CASCADE,
                date TEXT NOT NULL,
                value REAL NOT NULL DEFAULT 0,
                created_at TEXT NOT NULL DEFAULT (datetime('now')),
                UNIQUE(tracker_id, date)
        );`,
	`CREATE TABLE IF NOT EXISTS insights (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                prompt TEXT NOT NULL,
                response TEXT NOT NULL,
                context_type TEXT NOT NULL DEFAULT 'general' CHECK (context_type IN ('daily', 'weekly', 'quarterly', 'general')),
                created_at TEXT NOT NULL DEFAULT (datetime('now'))
        );`,
	`CREATE INDEX IF NOT EXISTS idx_check_in_answers_check_in ON check_in_answers(check_in_id);`,
	`CREATE INDEX IF NOT EXISTS idx_goal_tasks_goal ON goal_tasks(goal_id, sort_order);`,
	`CREATE INDEX IF NOT EXISTS idx_daily_tasks_date ON daily_tasks(date);`,
	`CREATE INDEX IF NOT EXISTS idx_tracker_entries_date ON tracker_entries(date);`,
}
