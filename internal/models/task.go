package models

import (
	"fmt"
	"time"
)

// TaskStatus tracks a task's progression from creation to completion.
// Transitions are not ordered; any permitted caller may set any status.
type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "InProgress"
	StatusCompleted  TaskStatus = "Completed"
)

// ParseTaskStatus converts a status string into a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch s {
	case string(StatusPending):
		return StatusPending, nil
	case string(StatusInProgress):
		return StatusInProgress, nil
	case string(StatusCompleted):
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("unknown task status %q", s)
	}
}

func (s TaskStatus) String() string {
	return string(s)
}

// TaskItem represents a task assigned to a user.
type TaskItem struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         TaskStatus `json:"status"`
	AssignedUserID int64      `json:"assignedUserId"`
	AssignedUser   *User      `json:"-"` // Resolved by the store on reads
	DueDate        *time.Time `json:"dueDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// TaskDto is the public projection of a TaskItem, with the assigned
// user's username and email resolved.
type TaskDto struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Status            string     `json:"status"`
	DueDate           *time.Time `json:"dueDate,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	AssignedUserID    int64      `json:"assignedUserId"`
	AssignedUserName  string     `json:"assignedUserName"`
	AssignedUserEmail *string    `json:"assignedUserEmail,omitempty"`
}

// ToDto maps a TaskItem to its public view.
func (t TaskItem) ToDto() TaskDto {
	dto := TaskDto{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status.String(),
		DueDate:        t.DueDate,
		CreatedAt:      t.CreatedAt,
		AssignedUserID: t.AssignedUserID,
	}
	if t.AssignedUser != nil {
		dto.AssignedUserName = t.AssignedUser.Username
		email := t.AssignedUser.Email
		dto.AssignedUserEmail = &email
	}
	return dto
}

// TaskPatch carries the fields of a task create/update request. A nil
// field means "leave unchanged".
type TaskPatch struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status"`
	AssignedUserID *int64     `json:"assignedUserId"`
	DueDate        *time.Time `json:"dueDate"`
}
