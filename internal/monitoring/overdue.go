package monitoring

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/hamdi-4u/TaskManagerAPI/internal/models"
	"github.com/hamdi-4u/TaskManagerAPI/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// OverdueSweeper periodically scans for tasks whose due date has passed
// without completion and records an event for each as it crosses the
// deadline. Each task is reported once: only due dates that fell inside
// the window since the previous sweep are flagged.
type OverdueSweeper struct {
	db        *sql.DB
	eventSvc  services.EventServiceProvider
	interval  time.Duration
	lastSweep time.Time
	done      chan bool
}

// NewOverdueSweeper creates a new sweeper that runs at the given interval.
func NewOverdueSweeper(db *sql.DB, eventSvc services.EventServiceProvider, interval time.Duration) *OverdueSweeper {
	return &OverdueSweeper{
		db:        db,
		eventSvc:  eventSvc,
		interval:  interval,
		lastSweep: time.Now().UTC(),
		done:      make(chan bool),
	}
}

// NewOverdueSweeperFromCron creates a sweeper whose interval is derived
// from a standard cron expression (the gap between its next two firings).
func NewOverdueSweeperFromCron(db *sql.DB, eventSvc services.EventServiceProvider, spec string) (*OverdueSweeper, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}
	first := schedule.Next(time.Now())
	interval := schedule.Next(first).Sub(first)
	return NewOverdueSweeper(db, eventSvc, interval), nil
}

// Run starts the sweeper's ticking loop.
func (s *OverdueSweeper) Run() {
	log.Info().Dur("interval", s.interval).Msg("Starting overdue task sweeper")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping overdue task sweeper")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// Stop halts the sweeper.
func (s *OverdueSweeper) Stop() {
	s.done <- true
}

// sweep flags tasks that became overdue since the last pass.
func (s *OverdueSweeper) sweep() {
	now := time.Now().UTC()
	rows, err := s.db.Query(`
		SELECT id, title, due_date FROM tasks
		WHERE status != ? AND due_date IS NOT NULL AND due_date > ? AND due_date <= ?`,
		models.StatusCompleted, s.lastSweep, now)
	if err != nil {
		log.Error().Err(err).Msg("Overdue sweep query failed")
		return
	}
	defer rows.Close()

	type overdue struct {
		id      int64
		title   string
		dueDate time.Time
	}
	var flagged []overdue
	for rows.Next() {
		var o overdue
		if err := rows.Scan(&o.id, &o.title, &o.dueDate); err != nil {
			log.Error().Err(err).Msg("Overdue sweep scan failed")
			return
		}
		flagged = append(flagged, o)
	}
	if err := rows.Err(); err != nil {
		log.Error().Err(err).Msg("Overdue sweep failed")
		return
	}
	rows.Close()

	for _, o := range flagged {
		id := o.id
		msg := fmt.Sprintf("Task '%s' passed its due date (%s) without completion.", o.title, o.dueDate.Format(time.RFC3339))
		s.eventSvc.CreateEvent("task.overdue", "warn", msg, &id)
	}

	s.lastSweep = now
}
