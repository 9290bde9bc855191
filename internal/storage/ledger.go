package storage

import (
	"fmt"
	"time"
)

// Ledger is the single-row daily calorie record.
type Ledger struct {
	DailyTarget   float64
	TodayCalories float64
	LastUpdated   time.Time
}

// TargetSet reports whether a daily target was ever chosen.
func (l Ledger) TargetSet() bool {
	return l.DailyTarget > 0
}

// Progress returns today's calories as a fraction of the target, 0 when unset.
func (l Ledger) Progress() float64 {
	if !l.TargetSet() {
		return 0
	}
	return l.TodayCalories / l.DailyTarget
}

// Ledger loads the ledger, resetting today's calories when the day changed.
func (s *Store) Ledger() (Ledger, error) {
	return s.loadLedger()
}

// SetTarget stores a new daily target.
func (s *Store) SetTarget(target float64) (Ledger, error) {
	if target < 0 {
		return Ledger{}, fmt.Errorf("storage: negative calorie target %v", target)
	}
	l, err := s.loadLedger()
	if err != nil {
		return Ledger{}, err
	}
	l.DailyTarget = target
	return l, s.saveLedger(l)
}

// AddCalories adds burned calories to today's total.
func (s *Store) AddCalories(amount float64) (Ledger, error) {
	if amount < 0 {
		return Ledger{}, fmt.Errorf("storage: negative calorie amount %v", amount)
	}
	l, err := s.loadLedger()
	if err != nil {
		return Ledger{}, err
	}
	l.TodayCalories += amount
	l.LastUpdated = s.now()
	return l, s.saveLedger(l)
}

// ResetLedger forgets the target and today's calories.
func (s *Store) ResetLedger() error {
	if _, err := s.db.Exec("DELETE FROM calorie_ledger"); err != nil {
		return fmt.Errorf("storage: cannot reset ledger: %w", err)
	}
	return nil
}

func (s *Store) loadLedger() (Ledger, error) {
	now := s.now()

	var l Ledger
	var lastUpdated any
	err := s.db.QueryRow(
		`SELECT daily_target, today_calories, last_updated FROM calorie_ledger WHERE id = 1`,
	).Scan(&l.DailyTarget, &l.TodayCalories, &lastUpdated)
	if isNoRows(err) {
		return Ledger{LastUpdated: now}, nil
	}
	if err != nil {
		return Ledger{}, fmt.Errorf("storage: cannot load ledger: %w", err)
	}
	l.LastUpdated = parseTime(lastUpdated)

	if !sameDay(l.LastUpdated, now) {
		l.TodayCalories = 0
		l.LastUpdated = now
		if err := s.saveLedger(l); err != nil {
			return Ledger{}, err
		}
	}
	return l, nil
}

func (s *Store) saveLedger(l Ledger) error {
	_, err := s.db.Exec(
		`INSERT INTO calorie_ledger (id, daily_target, today_calories, last_updated)
		 VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			daily_target = excluded.daily_target,
			today_calories = excluded.today_calories,
			last_updated = excluded.last_updated`,
		l.DailyTarget, l.TodayCalories, formatTime(l.LastUpdated),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save ledger: %w", err)
	}
	return nil
}

// sameDay compares calendar days in the location of b.
func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
