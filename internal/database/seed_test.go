package database

import (
	"database/sql"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func TestSeed_Fixture(t *testing.T) {
	db := setupTestDB(t)

	if err := Seed(db); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}

	var username, role, hash string
	row := db.QueryRow("SELECT username, role, password_hash FROM users WHERE id = 1")
	if err := row.Scan(&username, &role, &hash); err != nil {
		t.Fatalf("admin fixture missing: %v", err)
	}
	if username != "admin" || role != "Admin" {
		t.Errorf("unexpected admin fixture: %s/%s", username, role)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("admin123")) != nil {
		t.Error("admin fixture password does not verify")
	}

	var taskCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM tasks WHERE assigned_user_id = 2").Scan(&taskCount); err != nil {
		t.Fatalf("task count query failed: %v", err)
	}
	if taskCount != 3 {
		t.Errorf("expected 3 demo tasks for user 2, got %d", taskCount)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	if err := Seed(db); err != nil {
		t.Fatalf("first Seed returned error: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed returned error: %v", err)
	}

	var userCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&userCount); err != nil {
		t.Fatalf("user count query failed: %v", err)
	}
	if userCount != 2 {
		t.Errorf("expected seed to run once, got %d users", userCount)
	}
}
