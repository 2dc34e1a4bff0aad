package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/hamdi-4u/TaskManagerAPI/internal/auth"
	"github.com/hamdi-4u/TaskManagerAPI/internal/database"
	"github.com/hamdi-4u/TaskManagerAPI/internal/models"
	"github.com/hamdi-4u/TaskManagerAPI/internal/services"
	"github.com/hamdi-4u/TaskManagerAPI/internal/store"
)

// setupRouter wires the full stack over a seeded in-memory database:
// admin/admin123 (Admin) and user/user123 (User) with three demo tasks.
func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	auth.SetSecret("test-secret")

	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("failed to seed database: %v", err)
	}

	userStore := store.NewUserStore(db)
	taskStore := store.NewTaskStore(db)
	eventService := services.NewEventService(db, nil)
	userService := services.NewUserService(userStore, eventService)
	taskService := services.NewTaskService(taskStore, userStore, eventService)
	authService := services.NewAuthService(userStore, 24*time.Hour)

	return NewRouter(nil, authService, userService, taskService, eventService)
}

func login(t *testing.T, router http.Handler, username, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login as %s failed with status %d: %s", username, rec.Code, rec.Body.String())
	}

	var result services.LoginResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	return result.Token
}

func doJSON(router http.Handler, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLogin_BadCredentials(t *testing.T) {
	router := setupRouter(t)

	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "wrong"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body)))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestTasks_RoleScopedListing(t *testing.T) {
	router := setupRouter(t)
	adminToken := login(t, router, "admin", "admin123")
	userToken := login(t, router, "user", "user123")

	// Unauthenticated requests are rejected outright.
	if rec := doJSON(router, http.MethodGet, "/api/v1/tasks", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: expected 401, got %d", rec.Code)
	}

	// Admin sees the whole fixture.
	rec := doJSON(router, http.MethodGet, "/api/v1/tasks", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin list: expected 200, got %d", rec.Code)
	}
	var adminTasks []models.TaskDto
	json.Unmarshal(rec.Body.Bytes(), &adminTasks)
	if len(adminTasks) != 3 {
		t.Errorf("admin: expected 3 tasks, got %d", len(adminTasks))
	}

	// The regular user sees only their own tasks (all three are theirs).
	rec = doJSON(router, http.MethodGet, "/api/v1/tasks", userToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("user list: expected 200, got %d", rec.Code)
	}
	var userTasks []models.TaskDto
	json.Unmarshal(rec.Body.Bytes(), &userTasks)
	for _, task := range userTasks {
		if task.AssignedUserID != 2 {
			t.Errorf("user list leaked foreign task: %+v", task)
		}
	}
}

func TestTasks_AdminOnlyEndpoints(t *testing.T) {
	router := setupRouter(t)
	userToken := login(t, router, "user", "user123")

	payload := map[string]interface{}{"title": "Sneaky task", "assignedUserId": 2}
	if rec := doJSON(router, http.MethodPost, "/api/v1/tasks", userToken, payload); rec.Code != http.StatusForbidden {
		t.Errorf("user create: expected 403, got %d", rec.Code)
	}
	if rec := doJSON(router, http.MethodDelete, "/api/v1/tasks/1", userToken, nil); rec.Code != http.StatusForbidden {
		t.Errorf("user delete: expected 403, got %d", rec.Code)
	}
	if rec := doJSON(router, http.MethodGet, "/api/v1/users", userToken, nil); rec.Code != http.StatusForbidden {
		t.Errorf("user list users: expected 403, got %d", rec.Code)
	}
}

func TestTasks_UserStatusUpdateFlow(t *testing.T) {
	router := setupRouter(t)
	userToken := login(t, router, "user", "user123")

	rec := doJSON(router, http.MethodPut, "/api/v1/tasks/1", userToken, map[string]interface{}{
		"status": "Completed",
		"title":  "Ignored title",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("user status update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated models.TaskDto
	json.Unmarshal(rec.Body.Bytes(), &updated)
	if updated.Status != "Completed" {
		t.Errorf("status not applied: %q", updated.Status)
	}
	if updated.Title != "Setup project" {
		t.Errorf("title should be ignored for User role, got %q", updated.Title)
	}
}

func TestUsers_SelfAccessOnly(t *testing.T) {
	router := setupRouter(t)
	userToken := login(t, router, "user", "user123")

	// User id 2 may read their own profile...
	if rec := doJSON(router, http.MethodGet, "/api/v1/users/2", userToken, nil); rec.Code != http.StatusOK {
		t.Errorf("self profile: expected 200, got %d", rec.Code)
	}
	// ...but not the admin's.
	if rec := doJSON(router, http.MethodGet, "/api/v1/users/1", userToken, nil); rec.Code != http.StatusForbidden {
		t.Errorf("foreign profile: expected 403, got %d", rec.Code)
	}
}

func TestUsers_AdminCrud(t *testing.T) {
	router := setupRouter(t)
	adminToken := login(t, router, "admin", "admin123")

	rec := doJSON(router, http.MethodPost, "/api/v1/users", adminToken, map[string]string{
		"username": "carol",
		"email":    "carol@example.com",
		"password": "secret123",
		"role":     "User",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created models.UserDto
	json.Unmarshal(rec.Body.Bytes(), &created)

	// Duplicate username maps to 409.
	rec = doJSON(router, http.MethodPost, "/api/v1/users", adminToken, map[string]string{
		"username": "carol",
		"email":    "other@example.com",
		"password": "secret123",
		"role":     "User",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate user: expected 409, got %d", rec.Code)
	}

	// Deleting twice: 204 then 404.
	path := "/api/v1/users/" + strconv.FormatInt(created.ID, 10)
	if rec := doJSON(router, http.MethodDelete, path, adminToken, nil); rec.Code != http.StatusNoContent {
		t.Errorf("delete user: expected 204, got %d", rec.Code)
	}
	if rec := doJSON(router, http.MethodDelete, path, adminToken, nil); rec.Code != http.StatusNotFound {
		t.Errorf("delete absent user: expected 404, got %d", rec.Code)
	}
}

