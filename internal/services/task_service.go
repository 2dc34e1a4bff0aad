package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/hamdi-4u/TaskManagerAPI/internal/errors"
	"github.com/hamdi-4u/TaskManagerAPI/internal/models"
	"github.com/hamdi-4u/TaskManagerAPI/internal/store"
)

// TaskServiceProvider defines the interface for task services.
type TaskServiceProvider interface {
	GetAllTasks() ([]models.TaskDto, error)
	GetTaskByID(id int64) (models.TaskDto, error)
	GetTasksByUserID(userID int64) ([]models.TaskDto, error)
	CreateTask(input models.TaskPatch) (models.TaskDto, error)
	UpdateTask(id int64, patch models.TaskPatch, callerID int64, callerRole models.Role) (models.TaskDto, error)
	DeleteTask(id int64) (bool, error)
}

// TaskService provides business logic for task management, including the
// role-based field-update policy.
type TaskService struct {
	tasks    store.TaskStore
	users    store.UserStore
	eventSvc EventServiceProvider
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks store.TaskStore, users store.UserStore, eventSvc EventServiceProvider) *TaskService {
	return &TaskService{tasks: tasks, users: users, eventSvc: eventSvc}
}

// taskUpdatePolicy is the per-call authorization decision for UpdateTask,
// resolved once from the caller's role.
type taskUpdatePolicy int

const (
	// policyFullPatch lets the caller change every field of any task.
	policyFullPatch taskUpdatePolicy = iota
	// policyOwnStatusOnly gates the update on task ownership and applies
	// only the status field; other supplied fields are ignored.
	policyOwnStatusOnly
)

func policyFor(role models.Role) taskUpdatePolicy {
	if role == models.RoleAdmin {
		return policyFullPatch
	}
	return policyOwnStatusOnly
}

// GetAllTasks retrieves every task as a resolved view.
func (s *TaskService) GetAllTasks() ([]models.TaskDto, error) {
	tasks, err := s.tasks.FindAll()
	if err != nil {
		return nil, err
	}
	return mapTasks(tasks), nil
}

// GetTaskByID retrieves a single task by its ID.
func (s *TaskService) GetTaskByID(id int64) (models.TaskDto, error) {
	task, err := s.tasks.FindByID(id)
	if err != nil {
		return models.TaskDto{}, err
	}
	if task == nil {
		return models.TaskDto{}, apperrors.NotFound(fmt.Sprintf("task with ID %d not found", id))
	}
	return task.ToDto(), nil
}

// GetTasksByUserID retrieves the tasks assigned to a specific user. An
// unknown user simply yields an empty list.
func (s *TaskService) GetTasksByUserID(userID int64) ([]models.TaskDto, error) {
	tasks, err := s.tasks.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	return mapTasks(tasks), nil
}

// CreateTask creates a new task. Status defaults to Pending when absent
// and the assignee must exist.
func (s *TaskService) CreateTask(input models.TaskPatch) (models.TaskDto, error) {
	if input.Title == nil || strings.TrimSpace(*input.Title) == "" {
		return models.TaskDto{}, apperrors.Validation("title is required")
	}
	if utf8.RuneCountInString(*input.Title) > 200 {
		return models.TaskDto{}, apperrors.Validation("title cannot exceed 200 characters")
	}
	if input.AssignedUserID == nil || *input.AssignedUserID <= 0 {
		return models.TaskDto{}, apperrors.Validation("assigned user is required")
	}

	task := models.TaskItem{
		Title:          *input.Title,
		Status:         models.StatusPending,
		AssignedUserID: *input.AssignedUserID,
		DueDate:        input.DueDate,
		CreatedAt:      time.Now().UTC(),
	}

	if input.Description != nil {
		if utf8.RuneCountInString(*input.Description) > 1000 {
			return models.TaskDto{}, apperrors.Validation("description cannot exceed 1000 characters")
		}
		task.Description = *input.Description
	}

	if input.Status != nil {
		status, err := models.ParseTaskStatus(*input.Status)
		if err != nil {
			return models.TaskDto{}, apperrors.Validation(err.Error())
		}
		task.Status = status
	}

	if err := s.ensureUserExists(task.AssignedUserID); err != nil {
		return models.TaskDto{}, err
	}

	if err := s.tasks.Insert(&task); err != nil {
		return models.TaskDto{}, err
	}

	s.eventSvc.CreateEvent("task.create", "info", fmt.Sprintf("Task '%s' created.", task.Title), &task.ID)

	// Reload so the view carries the assignee's username and email.
	return s.GetTaskByID(task.ID)
}

// UpdateTask applies a partial update under the caller's role policy.
// Admins may patch every field; regular users may only change the status
// of tasks assigned to them.
func (s *TaskService) UpdateTask(id int64, patch models.TaskPatch, callerID int64, callerRole models.Role) (models.TaskDto, error) {
	task, err := s.tasks.FindByID(id)
	if err != nil {
		return models.TaskDto{}, err
	}
	if task == nil {
		return models.TaskDto{}, apperrors.NotFound(fmt.Sprintf("task with ID %d not found", id))
	}

	switch policyFor(callerRole) {
	case policyFullPatch:
		if err := s.applyFullPatch(task, patch); err != nil {
			return models.TaskDto{}, err
		}
	case policyOwnStatusOnly:
		if task.AssignedUserID != callerID {
			return models.TaskDto{}, apperrors.Authorization("you can only update your own tasks")
		}
		// Every supplied field other than status is ignored, not an error.
		if err := applyStatus(task, patch.Status); err != nil {
			return models.TaskDto{}, err
		}
	}

	if err := s.tasks.Update(task); err != nil {
		return models.TaskDto{}, err
	}

	s.eventSvc.CreateEvent("task.update", "info", fmt.Sprintf("Task %d updated.", task.ID), &task.ID)

	return s.GetTaskByID(id)
}

// DeleteTask removes a task. Returns false when the task did not exist.
func (s *TaskService) DeleteTask(id int64) (bool, error) {
	deleted, err := s.tasks.Delete(id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.eventSvc.CreateEvent("task.delete", "info", fmt.Sprintf("Task %d deleted.", id), nil)
	}
	return deleted, nil
}

func (s *TaskService) applyFullPatch(task *models.TaskItem, patch models.TaskPatch) error {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) != "" {
		if utf8.RuneCountInString(*patch.Title) > 200 {
			return apperrors.Validation("title cannot exceed 200 characters")
		}
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		if utf8.RuneCountInString(*patch.Description) > 1000 {
			return apperrors.Validation("description cannot exceed 1000 characters")
		}
		task.Description = *patch.Description
	}
	if err := applyStatus(task, patch.Status); err != nil {
		return err
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	if patch.AssignedUserID != nil && *patch.AssignedUserID > 0 {
		if err := s.ensureUserExists(*patch.AssignedUserID); err != nil {
			return err
		}
		task.AssignedUserID = *patch.AssignedUserID
	}
	return nil
}

func applyStatus(task *models.TaskItem, status *string) error {
	if status == nil {
		return nil
	}
	parsed, err := models.ParseTaskStatus(*status)
	if err != nil {
		return apperrors.Validation(err.Error())
	}
	task.Status = parsed
	return nil
}

func (s *TaskService) ensureUserExists(userID int64) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.Reference("assigned user does not exist")
	}
	return nil
}

func mapTasks(tasks []models.TaskItem) []models.TaskDto {
	dtos := make([]models.TaskDto, 0, len(tasks))
	for _, task := range tasks {
		dtos = append(dtos, task.ToDto())
	}
	return dtos
}
