package database

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"
)

// Seed inserts the demo accounts and tasks. It is a no-op when the users
// table already has rows, so restarts never duplicate the fixture.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	userHash, err := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	users := []struct {
		username, email, hash, role string
	}{
		{"admin", "admin@taskmanager.com", string(adminHash), "Admin"},
		{"user", "user@taskmanager.com", string(userHash), "User"},
	}
	for _, u := range users {
		if _, err := tx.Exec(
			"INSERT INTO users (username, email, password_hash, role) VALUES (?, ?, ?, ?)",
			u.username, u.email, u.hash, u.role,
		); err != nil {
			return err
		}
	}

	tasks := []struct {
		title, description, status string
	}{
		{"Setup project", "Initial setup", "Pending"},
		{"Create endpoints", "API creation", "InProgress"},
		{"Add Swagger", "Add docs", "Completed"},
	}
	for _, t := range tasks {
		// All demo tasks are assigned to the regular user (id 2).
		if _, err := tx.Exec(
			"INSERT INTO tasks (title, description, status, assigned_user_id) VALUES (?, ?, ?, 2)",
			t.title, t.description, t.status,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}
