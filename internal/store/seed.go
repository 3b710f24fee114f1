// File path: internal/store/seed.go
package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type seedQuestion struct {
	text     string
	qtype    string
	category string
	isCore   bool
}

// Default question set, inserted once when the questions table is empty.
var defaultQuestions = []seedQuestion{
	// Dagelijkse kernvragen
	{"Energieniveau", "score", "daily", true},
	{"Wat is vandaag je #1 prioriteit?", "open", "daily", true},
	// Dagelijkse wisselende score-vragen
	{"Hoe voel je je vandaag?", "score", "daily", false},
	{"Hoe productief was je vandaag?", "score", "daily", false},
	{"Hoe goed heb je geslapen?", "score", "daily", false},
	{"Hoeveel stress ervaar je?", "score", "daily", false},
	{"Hoe tevreden ben je over vandaag?", "score", "daily", false},
	// Dagelijkse wisselende open vragen
	{"Waar ben je dankbaar voor vandaag?", "open", "daily", false},
	{"Wat heb je vandaag geleerd?", "open", "daily", false},
	{"Wat zou je morgen anders doen?", "open", "daily", false},
	{"Wat was het hoogtepunt van je dag?", "open", "daily", false},
	{"Welk doel heb je vandaag dichterbij gebracht?", "open", "daily", false},
	{"Wat staat er in de weg van je doelen?", "open", "daily", false},
	{"Wat heb je voor iemand anders gedaan vandaag?", "open", "daily", false},
	{"Waar wil je morgen mee beginnen?", "open", "daily", false},
	// Weekreview vragen
	{"Hoe was je week overall?", "score", "weekly", true},
	{"Wat ging er goed deze week?", "open", "weekly", true},
	{"Wat kan er beter volgende week?", "open", "weekly", true},
	{"Ben je op koers met je kwartaaldoelen?", "score", "weekly", true},
	{"Wat zijn je top 3 prioriteiten voor volgende week?", "open", "weekly", true},
}

func (s *Store) seedQuestions(ctx context.Context) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	return withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var count int
		if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM questions`); err != nil {
			return fmt.Errorf("count questions: %w", err)
		}
		if count > 0 {
			return nil
		}
		for _, q := range defaultQuestions {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO questions (text, type, category, is_core) VALUES (?, ?, ?, ?)`,
				q.text, q.qtype, q.category, q.isCore); err != nil {
				return fmt.Errorf("seed question %q: %w", q.text, err)
			}
		}
		return nil
	})
}
