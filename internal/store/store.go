// Package store contains the persistence layer. Lookups return a nil
// entity for "not found" rather than an error; callers decide whether
// absence is a failure.
package store

import "github.com/hamdi-4u/TaskManagerAPI/internal/models"

// UserStore defines persistence operations for users.
type UserStore interface {
	FindAll() ([]models.User, error)
	FindByID(id int64) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	Insert(user *models.User) error
	Update(user *models.User) error
	Delete(id int64) (bool, error)
}

// TaskStore defines persistence operations for tasks. Reads resolve the
// assigned user eagerly.
type TaskStore interface {
	FindAll() ([]models.TaskItem, error)
	FindByID(id int64) (*models.TaskItem, error)
	FindByUserID(userID int64) ([]models.TaskItem, error)
	Insert(task *models.TaskItem) error
	Update(task *models.TaskItem) error
	Delete(id int64) (bool, error)
}
