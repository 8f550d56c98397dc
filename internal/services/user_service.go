package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nvalverde/tourvia-be/internal/auth"
	"github.com/nvalverde/tourvia-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, name, email, phone, password string) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	UpdateProfile(ctx context.Context, id, name, phone string) (models.User, error)
	UpdatePassword(ctx context.Context, id, currentPassword, newPassword string) error
}

// UserService provides business logic for account management.
type UserService struct {
	db           *sql.DB
	eventService EventServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, eventService EventServiceProvider) *UserService {
	return &UserService{db: db, eventService: eventService}
}

// Register creates a new account, hashing the password before storage.
// A duplicate email maps to ErrEmailTaken so the client can prompt for a
// different one.
func (s *UserService) Register(ctx context.Context, name, email, phone, password string) (models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, phone, password_hash, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, user.Phone, hash, user.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("%w: inserting user: %v", ErrPersistence, err)
	}

	s.eventService.CreateEvent(ctx, "user.register", "info", fmt.Sprintf("Account created for %s.", user.Email), &user.ID)
	return user, nil
}

// Authenticate verifies a user's credentials. Unknown email and wrong
// password both return ErrUnauthorized with no distinguishing signal.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, phone, password_hash, created_at FROM users WHERE email = ? LIMIT 1", email)

	var user models.User
	var phone sql.NullString
	var createdAt string
	err := row.Scan(&user.ID, &user.Name, &user.Email, &phone, &user.PasswordHash, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrUnauthorized
		}
		return models.User{}, err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return models.User{}, ErrUnauthorized
	}

	user.Phone = phone.String
	user.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, phone, created_at FROM users WHERE id = ?", id)

	var user models.User
	var phone sql.NullString
	var createdAt string
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &phone, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	user.Phone = phone.String
	user.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return user, nil
}

// UpdateProfile updates a user's non-sensitive information.
func (s *UserService) UpdateProfile(ctx context.Context, id, name, phone string) (models.User, error) {
	_, err := s.db.ExecContext(ctx, "UPDATE users SET name = ?, phone = ? WHERE id = ?", name, phone, id)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: updating user: %v", ErrPersistence, err)
	}
	return s.GetUserByID(ctx, id)
}

// UpdatePassword verifies the current password, then hashes and stores a
// new one.
func (s *UserService) UpdatePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	var stored string
	err := s.db.QueryRowContext(ctx, "SELECT password_hash FROM users WHERE id = ?", id).Scan(&stored)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}

	if !auth.VerifyPassword(currentPassword, stored) {
		return ErrUnauthorized
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	_, err = s.db.ExecContext(ctx, "UPDATE users SET password_hash = ? WHERE id = ?", hash, id)
	if err != nil {
		return fmt.Errorf("%w: updating password: %v", ErrPersistence, err)
	}
	return nil
}
