package models

import "time"

// Event represents a loggable action or alert in the system.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "task.create", "user.delete"
	Level     string    `json:"level"` // e.g., "info", "warn", "error"
	Message   string    `json:"message"`
	TaskID    *int64    `json:"taskId,omitempty"` // Nullable for user/system events
	CreatedAt time.Time `json:"createdAt"`
}
