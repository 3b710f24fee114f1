// File path: internal/questions/select.go

// Package questions selects the question set for a day's check-in form:
// every core daily question plus a rotating subset drawn from the
// non-core pool, deterministic per calendar date so redisplaying the
// form always shows the same questions.
package questions

import (
	"math/rand"
	"time"

	"github.com/gjagils/Grip/internal/store"
)

const (
	minExtra = 3
	maxExtra = 5
)

// Sampler yields the deterministic draws for one calendar day. The
// underlying generator is seeded with the YYYYMMDD integer of the date;
// the drawn count is uniform in [minExtra, maxExtra] clamped to the pool
// size. Swapping the generator algorithm changes which questions rotate
// in, never the contract.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler seeds a sampler for the given date.
func NewSampler(forDate time.Time) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(DateSeed(forDate)))}
}

// DateSeed derives the integer seed from a calendar date, e.g.
// 2024-01-10 -> 20240110.
func DateSeed(forDate time.Time) int64 {
	year, month, day := forDate.Date()
	return int64(year)*10000 + int64(month)*100 + int64(day)
}

// ExtraCount draws how many pool questions rotate in today.
func (s *Sampler) ExtraCount(poolSize int) int {
	n := minExtra + s.rng.Intn(maxExtra-minExtra+1)
	if n > poolSize {
		n = poolSize
	}
	return n
}

// Pick samples n distinct questions from the pool without replacement.
func (s *Sampler) Pick(pool []store.Question, n int) []store.Question {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	if n > len(pool) {
		n = len(pool)
	}
	perm := s.rng.Perm(len(pool))
	picked := make([]store.Question, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, pool[idx])
	}
	return picked
}

// DailySet returns the check-in questions for a date: core questions
// first in id order, then the sampled extras. Pure function of the date
// and the active daily question set.
func DailySet(forDate time.Time, daily []store.Question) []store.Question {
	core := make([]store.Question, 0, len(daily))
	pool := make([]store.Question, 0, len(daily))
	for _, q := range daily {
		if q.IsCore {
			core = append(core, q)
		} else {
			pool = append(pool, q)
		}
	}
	sampler := NewSampler(forDate)
	n := sampler.ExtraCount(len(pool))
	return append(core, sampler.Pick(pool, n)...)
}
