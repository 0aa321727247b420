// Package postgres implements repository.Store on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"taskboard/internal/models"
	"taskboard/internal/repository"
	"taskboard/pkg/logger"
)

// uniqueViolation is the SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// Store persists users and tasks in Postgres.
type Store struct {
	db *sql.DB
}

var _ repository.Store = (*Store)(nil)

// New wraps an open pool. The schema must already exist.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateUser inserts a new user.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateEmail
		}
		logger.Error(ctx, "Repository CreateUser failed", "error", err)
		return err
	}
	return nil
}

// GetUserByEmail returns the user with exactly this email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, repository.ErrNotFound
	}
	if err != nil {
		logger.Error(ctx, "Repository GetUserByEmail failed", "error", err)
		return models.User{}, err
	}
	return u, nil
}

// ListTasks returns the user's tasks in creation order.
func (s *Store) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, category, created_at FROM tasks WHERE user_id = $1 ORDER BY created_at ASC, id ASC`,
		userID)
	if err != nil {
		logger.Error(ctx, "Repository ListTasks failed", "error", err)
		return nil, err
	}
	defer rows.Close()
	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Category, &t.CreatedAt); err != nil {
			logger.Error(ctx, "Repository scan task failed", "error", err)
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CreateTask inserts a new task.
func (s *Store) CreateTask(ctx context.Context, t *models.Task) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, title, category, created_at) VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.UserID, t.Title, string(t.Category), t.CreatedAt)
	if err != nil {
		logger.Error(ctx, "Repository CreateTask failed", "error", err)
		return err
	}
	return nil
}

// GetTask returns a task by id.
func (s *Store) GetTask(ctx context.Context, id string) (models.Task, error) {
	var t models.Task
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, category, created_at FROM tasks WHERE id = $1`, id).
		Scan(&t.ID, &t.UserID, &t.Title, &t.Category, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, repository.ErrNotFound
	}
	if err != nil {
		logger.Error(ctx, "Repository GetTask failed", "error", err, "id", id)
		return models.Task{}, err
	}
	return t, nil
}

// DeleteTask removes a task by ID.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		logger.Error(ctx, "Repository DeleteTask failed", "error", err, "id", id)
		return err
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
