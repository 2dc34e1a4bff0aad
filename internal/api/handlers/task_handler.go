package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hamdi-4u/TaskManagerAPI/internal/auth"
	apperrors "github.com/hamdi-4u/TaskManagerAPI/internal/errors"
	"github.com/hamdi-4u/TaskManagerAPI/internal/models"
	"github.com/hamdi-4u/TaskManagerAPI/internal/services"
	"github.com/rs/zerolog/log"
)

// TaskHandler handles HTTP requests for task management.
type TaskHandler struct {
	service services.TaskServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider) *TaskHandler {
	return &TaskHandler{service: service}
}

// GetAll lists tasks based on the caller's role: admins see every task,
// regular users only the tasks assigned to them.
func (h *TaskHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing auth token", http.StatusUnauthorized)
		return
	}

	var tasks []models.TaskDto
	var err error
	if claims.Role == models.RoleAdmin.String() {
		tasks, err = h.service.GetAllTasks()
	} else {
		tasks, err = h.service.GetTasksByUserID(claims.UserID)
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tasks")
		http.Error(w, "Failed to list tasks", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}

// Get retrieves a task by ID. Regular users may only view their own tasks.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid task ID", http.StatusBadRequest)
		return
	}

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing auth token", http.StatusUnauthorized)
		return
	}

	task, err := h.service.GetTaskByID(id)
	if err != nil {
		log.Warn().Err(err).Int64("task_id", id).Msg("Failed to get task by ID")
		http.Error(w, err.Error(), apperrors.StatusCode(err))
		return
	}

	if claims.Role != models.RoleAdmin.String() && task.AssignedUserID != claims.UserID {
		http.Error(w, "You can only view your own tasks", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

// Create handles new task creation. Admin only.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	task, err := h.service.CreateTask(input)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create task")
		http.Error(w, err.Error(), apperrors.StatusCode(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(task)
}

// Update applies a partial update. The service enforces the role policy,
// so any authenticated caller may reach this endpoint.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid task ID", http.StatusBadRequest)
		return
	}

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing auth token", http.StatusUnauthorized)
		return
	}

	var patch models.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	role, err := models.ParseRole(claims.Role)
	if err != nil {
		// A token minted by us never carries an unknown role.
		http.Error(w, "Invalid auth token", http.StatusUnauthorized)
		return
	}

	task, err := h.service.UpdateTask(id, patch, claims.UserID, role)
	if err != nil {
		log.Warn().Err(err).Int64("task_id", id).Int64("caller_id", claims.UserID).Msg("Failed to update task")
		http.Error(w, err.Error(), apperrors.StatusCode(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

// Delete removes a task. Admin only.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid task ID", http.StatusBadRequest)
		return
	}

	deleted, err := h.service.DeleteTask(id)
	if err != nil {
		log.Error().Err(err).Int64("task_id", id).Msg("Failed to delete task")
		http.Error(w, "Failed to delete task", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
