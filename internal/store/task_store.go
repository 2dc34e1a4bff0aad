package store

import (
	"database/sql"

	"github.com/hamdi-4u/TaskManagerAPI/internal/models"
)

// SQLiteTaskStore is the SQLite-backed TaskStore.
type SQLiteTaskStore struct {
	db *sql.DB
}

// NewTaskStore creates a new SQLiteTaskStore.
func NewTaskStore(db *sql.DB) *SQLiteTaskStore {
	return &SQLiteTaskStore{db: db}
}

const taskSelect = `
	SELECT t.id, t.title, t.description, t.status, t.assigned_user_id, t.due_date, t.created_at,
	       u.id, u.username, u.email, u.role, u.created_at
	FROM tasks t
	JOIN users u ON u.id = t.assigned_user_id`

// FindAll retrieves every task with its assigned user resolved.
func (s *SQLiteTaskStore) FindAll() ([]models.TaskItem, error) {
	rows, err := s.db.Query(taskSelect + " ORDER BY t.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// FindByID retrieves a single task by its ID, or nil if absent.
func (s *SQLiteTaskStore) FindByID(id int64) (*models.TaskItem, error) {
	rows, err := s.db.Query(taskSelect+" WHERE t.id = ?", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, nil
	}
	return &tasks[0], nil
}

// FindByUserID retrieves all tasks assigned to a specific user.
func (s *SQLiteTaskStore) FindByUserID(userID int64) ([]models.TaskItem, error) {
	rows, err := s.db.Query(taskSelect+" WHERE t.assigned_user_id = ? ORDER BY t.id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// Insert stores a new task and fills in the assigned ID.
func (s *SQLiteTaskStore) Insert(task *models.TaskItem) error {
	stmt, err := s.db.Prepare("INSERT INTO tasks (title, description, status, assigned_user_id, due_date, created_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	res, err := stmt.Exec(task.Title, task.Description, task.Status, task.AssignedUserID, task.DueDate, task.CreatedAt)
	if err != nil {
		return err
	}
	task.ID, err = res.LastInsertId()
	return err
}

// Update persists changes to an existing task.
func (s *SQLiteTaskStore) Update(task *models.TaskItem) error {
	stmt, err := s.db.Prepare("UPDATE tasks SET title = ?, description = ?, status = ?, assigned_user_id = ?, due_date = ? WHERE id = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(task.Title, task.Description, task.Status, task.AssignedUserID, task.DueDate, task.ID)
	return err
}

// Delete removes a task. Returns false when no row matched.
func (s *SQLiteTaskStore) Delete(id int64) (bool, error) {
	res, err := s.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func scanTasks(rows *sql.Rows) ([]models.TaskItem, error) {
	var tasks []models.TaskItem
	for rows.Next() {
		var task models.TaskItem
		var user models.User
		var dueDate sql.NullTime
		err := rows.Scan(
			&task.ID, &task.Title, &task.Description, &task.Status, &task.AssignedUserID, &dueDate, &task.CreatedAt,
			&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if dueDate.Valid {
			d := dueDate.Time
			task.DueDate = &d
		}
		task.AssignedUser = &user
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}
