// Package repository defines the persistence contracts for users and tasks.
// Each driver lives in its own subpackage.
package repository

import (
	"context"
	"errors"

	"taskboard/internal/models"
)

var (
	// ErrDuplicateEmail is returned when a user with the same email exists.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
)

// UserStore persists user records.
type UserStore interface {
	// CreateUser inserts u. Email uniqueness is enforced at write time.
	CreateUser(ctx context.Context, u *models.User) error
	// GetUserByEmail looks a user up by exact email.
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

// TaskStore persists task records keyed by owner.
type TaskStore interface {
	ListTasks(ctx context.Context, userID string) ([]models.Task, error)
	CreateTask(ctx context.Context, t *models.Task) error
	GetTask(ctx context.Context, id string) (models.Task, error)
	// DeleteTask removes a task by id. A missing id is not an error.
	DeleteTask(ctx context.Context, id string) error
}

// Store is a complete storage backend.
type Store interface {
	UserStore
	TaskStore
	Ping(ctx context.Context) error
	Close() error
}
