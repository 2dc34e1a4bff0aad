package monitoring

import (
	"database/sql"
	"testing"
	"time"

	"github.com/hamdi-4u/TaskManagerAPI/internal/database"
	"github.com/hamdi-4u/TaskManagerAPI/internal/services"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func insertTask(t *testing.T, db *sql.DB, title, status string, due time.Time) {
	t.Helper()

	if _, err := db.Exec("INSERT OR IGNORE INTO users (id, username, email, password_hash, role) VALUES (1, 'alice', 'a@example.com', 'hash', 'User')"); err != nil {
		t.Fatalf("failed to insert user: %v", err)
	}
	if _, err := db.Exec("INSERT INTO tasks (title, status, assigned_user_id, due_date) VALUES (?, ?, 1, ?)", title, status, due); err != nil {
		t.Fatalf("failed to insert task: %v", err)
	}
}

func countOverdueEvents(t *testing.T, eventSvc *services.EventService) int {
	t.Helper()

	events, err := eventSvc.GetRecentEvents(100)
	if err != nil {
		t.Fatalf("GetRecentEvents returned error: %v", err)
	}
	count := 0
	for _, event := range events {
		if event.Type == "task.overdue" {
			count++
		}
	}
	return count
}

func TestSweep_FlagsNewlyOverdueOnce(t *testing.T) {
	db := setupTestDB(t)
	eventSvc := services.NewEventService(db, nil)

	sweeper := NewOverdueSweeper(db, eventSvc, time.Minute)
	sweeper.lastSweep = time.Now().UTC().Add(-time.Hour)

	insertTask(t, db, "Late report", "InProgress", time.Now().UTC().Add(-time.Minute))

	sweeper.sweep()
	if got := countOverdueEvents(t, eventSvc); got != 1 {
		t.Fatalf("expected 1 overdue event after first sweep, got %d", got)
	}

	// A later sweep must not flag the same task again.
	sweeper.sweep()
	if got := countOverdueEvents(t, eventSvc); got != 1 {
		t.Errorf("expected overdue event to stay at 1, got %d", got)
	}
}

func TestSweep_IgnoresCompletedAndFuture(t *testing.T) {
	db := setupTestDB(t)
	eventSvc := services.NewEventService(db, nil)

	sweeper := NewOverdueSweeper(db, eventSvc, time.Minute)
	sweeper.lastSweep = time.Now().UTC().Add(-time.Hour)

	insertTask(t, db, "Done on time", "Completed", time.Now().UTC().Add(-time.Minute))
	insertTask(t, db, "Not due yet", "Pending", time.Now().UTC().Add(time.Hour))

	sweeper.sweep()
	if got := countOverdueEvents(t, eventSvc); got != 0 {
		t.Errorf("expected no overdue events, got %d", got)
	}
}

func TestNewOverdueSweeperFromCron(t *testing.T) {
	db := setupTestDB(t)
	eventSvc := services.NewEventService(db, nil)

	sweeper, err := NewOverdueSweeperFromCron(db, eventSvc, "*/5 * * * *")
	if err != nil {
		t.Fatalf("NewOverdueSweeperFromCron returned error: %v", err)
	}
	if sweeper.interval != 5*time.Minute {
		t.Errorf("expected 5m interval, got %v", sweeper.interval)
	}

	if _, err := NewOverdueSweeperFromCron(db, eventSvc, "not a cron"); err == nil {
		t.Error("expected invalid cron expression to be rejected")
	}
}
