package services

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/hamdi-4u/TaskManagerAPI/internal/errors"
	"github.com/hamdi-4u/TaskManagerAPI/internal/models"
	"github.com/hamdi-4u/TaskManagerAPI/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetAllUsers() ([]models.UserDto, error)
	GetUserByID(id int64) (models.UserDto, error)
	GetUserByUsername(username string) (models.UserDto, error)
	CreateUser(username, email, password, role string) (models.UserDto, error)
	UpdateUser(id int64, patch models.UserPatch) (models.UserDto, error)
	DeleteUser(id int64) error
}

// UserService provides business logic for user management.
type UserService struct {
	users    store.UserStore
	eventSvc EventServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(users store.UserStore, eventSvc EventServiceProvider) *UserService {
	return &UserService{users: users, eventSvc: eventSvc}
}

// GetAllUsers retrieves every user as a public view. The caller is
// expected to have already passed the admin gate.
func (s *UserService) GetAllUsers() ([]models.UserDto, error) {
	users, err := s.users.FindAll()
	if err != nil {
		return nil, err
	}
	dtos := make([]models.UserDto, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, user.ToDto())
	}
	return dtos, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id int64) (models.UserDto, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return models.UserDto{}, err
	}
	if user == nil {
		return models.UserDto{}, apperrors.NotFound(fmt.Sprintf("user with ID %d not found", id))
	}
	return user.ToDto(), nil
}

// GetUserByUsername retrieves a single user by their username.
func (s *UserService) GetUserByUsername(username string) (models.UserDto, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		return models.UserDto{}, err
	}
	if user == nil {
		return models.UserDto{}, apperrors.NotFound(fmt.Sprintf("user %q not found", username))
	}
	return user.ToDto(), nil
}

// CreateUser creates a new user, hashing their password before storage.
func (s *UserService) CreateUser(username, email, password, role string) (models.UserDto, error) {
	if err := validateNewUser(username, email, password, role); err != nil {
		return models.UserDto{}, err
	}

	parsedRole, err := models.ParseRole(role)
	if err != nil {
		return models.UserDto{}, apperrors.Validation(err.Error())
	}

	if err := s.ensureUsernameAvailable(username, 0); err != nil {
		return models.UserDto{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.UserDto{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         parsedRole,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Insert(&user); err != nil {
		return models.UserDto{}, err
	}

	s.eventSvc.CreateEvent("user.create", "info", fmt.Sprintf("User '%s' created.", user.Username), nil)
	return user.ToDto(), nil
}

// UpdateUser applies a partial update to a user. Fields absent from the
// patch are left unchanged.
func (s *UserService) UpdateUser(id int64, patch models.UserPatch) (models.UserDto, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return models.UserDto{}, err
	}
	if user == nil {
		return models.UserDto{}, apperrors.NotFound(fmt.Sprintf("user with ID %d not found", id))
	}

	if patch.Username != nil && strings.TrimSpace(*patch.Username) != "" && *patch.Username != user.Username {
		if err := s.ensureUsernameAvailable(*patch.Username, user.ID); err != nil {
			return models.UserDto{}, err
		}
		user.Username = *patch.Username
	}

	if patch.Email != nil && strings.TrimSpace(*patch.Email) != "" {
		user.Email = *patch.Email
	}

	if patch.Password != nil && strings.TrimSpace(*patch.Password) != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.UserDto{}, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if patch.Role != nil && strings.TrimSpace(*patch.Role) != "" {
		parsedRole, err := models.ParseRole(*patch.Role)
		if err != nil {
			return models.UserDto{}, apperrors.Validation(err.Error())
		}
		user.Role = parsedRole
	}

	if err := s.users.Update(user); err != nil {
		return models.UserDto{}, err
	}
	return user.ToDto(), nil
}

// DeleteUser removes a user. Their tasks go with them via the store-level
// cascade. Deleting an absent user reports not found rather than the
// original API's unconditional success.
func (s *UserService) DeleteUser(id int64) error {
	deleted, err := s.users.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound(fmt.Sprintf("user with ID %d not found", id))
	}
	s.eventSvc.CreateEvent("user.delete", "info", fmt.Sprintf("User %d deleted.", id), nil)
	return nil
}

// ensureUsernameAvailable rejects a username already held by a different
// user. The UNIQUE constraint on users.username backs this check against
// concurrent writers.
func (s *UserService) ensureUsernameAvailable(username string, selfID int64) error {
	existing, err := s.users.FindByUsername(username)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return apperrors.Conflict("username already exists")
	}
	return nil
}

func validateNewUser(username, email, password, role string) error {
	if strings.TrimSpace(username) == "" {
		return apperrors.Validation("username is required")
	}
	if utf8.RuneCountInString(username) < 3 || utf8.RuneCountInString(username) > 50 {
		return apperrors.Validation("username must be between 3 and 50 characters")
	}
	if strings.TrimSpace(email) == "" {
		return apperrors.Validation("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.Validation("invalid email format")
	}
	if strings.TrimSpace(password) == "" {
		return apperrors.Validation("password is required")
	}
	if utf8.RuneCountInString(password) < 6 {
		return apperrors.Validation("password must be at least 6 characters")
	}
	if strings.TrimSpace(role) == "" {
		return apperrors.Validation("role is required")
	}
	return nil
}
