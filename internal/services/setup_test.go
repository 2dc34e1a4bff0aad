package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/hamdi-4u/TaskManagerAPI/internal/auth"
	"github.com/hamdi-4u/TaskManagerAPI/internal/database"
	"github.com/hamdi-4u/TaskManagerAPI/internal/models"
	"github.com/hamdi-4u/TaskManagerAPI/internal/store"
)

// setupTestDB opens a fresh in-memory database with the full schema.
// A single connection keeps every statement on the same memory store.
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

type testEnv struct {
	db       *sql.DB
	users    *store.SQLiteUserStore
	tasks    *store.SQLiteTaskStore
	userSvc  *UserService
	taskSvc  *TaskService
	authSvc  *AuthService
	eventSvc *EventService
}

func setupServices(t *testing.T) *testEnv {
	t.Helper()
	auth.SetSecret("test-secret")

	db := setupTestDB(t)
	users := store.NewUserStore(db)
	tasks := store.NewTaskStore(db)
	eventSvc := NewEventService(db, nil)

	return &testEnv{
		db:       db,
		users:    users,
		tasks:    tasks,
		userSvc:  NewUserService(users, eventSvc),
		taskSvc:  NewTaskService(tasks, users, eventSvc),
		authSvc:  NewAuthService(users, 24*time.Hour),
		eventSvc: eventSvc,
	}
}

func (e *testEnv) mustCreateUser(t *testing.T, username, role string) models.UserDto {
	t.Helper()

	user, err := e.userSvc.CreateUser(username, username+"@example.com", "secret123", role)
	if err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func (e *testEnv) mustCreateTask(t *testing.T, title string, assigneeID int64) models.TaskDto {
	t.Helper()

	task, err := e.taskSvc.CreateTask(models.TaskPatch{
		Title:          &title,
		AssignedUserID: &assigneeID,
	})
	if err != nil {
		t.Fatalf("failed to create task %q: %v", title, err)
	}
	return task
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }
