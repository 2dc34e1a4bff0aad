package store

import (
	"database/sql"

	"github.com/hamdi-4u/TaskManagerAPI/internal/models"
)

// SQLiteUserStore is the SQLite-backed UserStore.
type SQLiteUserStore struct {
	db *sql.DB
}

// NewUserStore creates a new SQLiteUserStore.
func NewUserStore(db *sql.DB) *SQLiteUserStore {
	return &SQLiteUserStore{db: db}
}

// FindAll retrieves every user.
func (s *SQLiteUserStore) FindAll() ([]models.User, error) {
	rows, err := s.db.Query("SELECT id, username, email, password_hash, role, created_at FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// FindByID retrieves a single user by their ID, or nil if absent.
func (s *SQLiteUserStore) FindByID(id int64) (*models.User, error) {
	row := s.db.QueryRow("SELECT id, username, email, password_hash, role, created_at FROM users WHERE id = ?", id)
	return scanUser(row)
}

// FindByUsername retrieves a single user by their username, or nil if absent.
func (s *SQLiteUserStore) FindByUsername(username string) (*models.User, error) {
	row := s.db.QueryRow("SELECT id, username, email, password_hash, role, created_at FROM users WHERE username = ?", username)
	return scanUser(row)
}

// Insert stores a new user and fills in the assigned ID and creation time.
func (s *SQLiteUserStore) Insert(user *models.User) error {
	stmt, err := s.db.Prepare("INSERT INTO users (username, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	res, err := stmt.Exec(user.Username, user.Email, user.PasswordHash, user.Role, user.CreatedAt)
	if err != nil {
		return err
	}
	user.ID, err = res.LastInsertId()
	return err
}

// Update persists changes to an existing user.
func (s *SQLiteUserStore) Update(user *models.User) error {
	stmt, err := s.db.Prepare("UPDATE users SET username = ?, email = ?, password_hash = ?, role = ? WHERE id = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.Username, user.Email, user.PasswordHash, user.Role, user.ID)
	return err
}

// Delete removes a user. The foreign key cascade removes their tasks.
// Returns false when no row matched.
func (s *SQLiteUserStore) Delete(id int64) (bool, error) {
	res, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
