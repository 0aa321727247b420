// Package memory is an in-process Store used by tests and local runs.
package memory

import (
	"context"
	"slices"
	"sync"

	"taskboard/internal/models"
	"taskboard/internal/repository"
)

// Store keeps users and tasks in maps guarded by a mutex.
type Store struct {
	mu      sync.RWMutex
	users   map[string]models.User // by email
	tasks   map[string]models.Task
	ordered []string // task ids in insertion order
}

var _ repository.Store = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{
		users: make(map[string]models.User),
		tasks: make(map[string]models.Task),
	}
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	s.users[u.Email] = *u
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s *Store) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Task{}
	for _, id := range s.ordered {
		if t := s.tasks[id]; t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) CreateTask(ctx context.Context, t *models.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[t.ID]; !ok {
		s.ordered = append(s.ordered, t.ID)
	}
	s.tasks[t.ID] = *t
	return nil
}

func (s *Store) GetTask(ctx context.Context, id string) (models.Task, error) {
	if err := ctx.Err(); err != nil {
		return models.Task{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return models.Task{}, repository.ErrNotFound
	}
	return t, nil
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return nil
	}
	delete(s.tasks, id)
	s.ordered = slices.DeleteFunc(s.ordered, func(v string) bool { return v == id })
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() error {
	return nil
}
