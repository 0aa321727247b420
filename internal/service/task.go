package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"taskboard/internal/models"
	"taskboard/internal/repository"
	"taskboard/pkg/logger"
)

// TaskCache caches each user's task list.
type TaskCache interface {
	GetTasks(ctx context.Context, userID string) ([]models.Task, bool)
	SetTasks(ctx context.Context, userID string, tasks []models.Task)
	InvalidateTasks(ctx context.Context, userID string)
}

// EventPublisher receives an event after every task write.
type EventPublisher interface {
	PublishTaskEvent(ctx context.Context, ev *models.TaskEvent) error
}

// TasksOptions configures Tasks. Nil Cache and Events disable caching and
// publishing.
type TasksOptions struct {
	RequireOwnerOnDelete bool
	Cache                TaskCache
	Events               EventPublisher
	Now                  func() time.Time
	NewID                func() string
}

// Tasks lists, creates and deletes tasks on behalf of an authenticated user.
type Tasks struct {
	store        repository.TaskStore
	cache        TaskCache
	events       EventPublisher
	requireOwner bool
	now          func() time.Time
	newID        func() string
	listGroup    singleflight.Group

	// writeGens counts task writes per user stripe. A list load only caches
	// its result when no write landed on the stripe while it read the store.
	writeGens [writeGenStripes]atomic.Uint64
}

const writeGenStripes = 256

// NewTasks wires the task use cases.
func NewTasks(store repository.TaskStore, opts TasksOptions) *Tasks {
	s := &Tasks{
		store:        store,
		cache:        opts.Cache,
		events:       opts.Events,
		requireOwner: opts.RequireOwnerOnDelete,
		now:          opts.Now,
		newID:        opts.NewID,
	}
	if s.cache == nil {
		s.cache = noopCache{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// List returns every task owned by userID, or an empty slice.
func (s *Tasks) List(ctx context.Context, userID string) ([]models.Task, error) {
	if tasks, ok := s.cache.GetTasks(ctx, userID); ok {
		return tasks, nil
	}
	// Concurrent misses for one user share a single store read. The read must
	// not die with whichever caller happened to start it.
	v, err, _ := s.listGroup.Do(userID, func() (any, error) {
		return s.load(context.WithoutCancel(ctx), userID)
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	tasks := v.([]models.Task)
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// Refresh reloads userID's tasks from the store and caches them unless a
// write for that user raced the read.
func (s *Tasks) Refresh(ctx context.Context, userID string) ([]models.Task, error) {
	tasks, err := s.load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("refresh tasks: %w", err)
	}
	return tasks, nil
}

func (s *Tasks) load(ctx context.Context, userID string) ([]models.Task, error) {
	gen := s.writeGen(userID)
	before := gen.Load()
	tasks, err := s.store.ListTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	if gen.Load() != before {
		logger.Debug(ctx, "Task list changed during load; not caching", "user_id", userID)
		return tasks, nil
	}
	s.cache.SetTasks(ctx, userID, tasks)
	// A write that bumped the counter after the check above may have
	// invalidated before SetTasks ran.
	if gen.Load() != before {
		s.cache.InvalidateTasks(ctx, userID)
	}
	return tasks, nil
}

// wrote records a completed store write for userID and drops the cached list.
func (s *Tasks) wrote(ctx context.Context, userID string) {
	s.writeGen(userID).Add(1)
	s.cache.InvalidateTasks(ctx, userID)
}

func (s *Tasks) writeGen(userID string) *atomic.Uint64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return &s.writeGens[h.Sum32()%writeGenStripes]
}

// Create validates category, stamps id and creation time, and stores the task.
func (s *Tasks) Create(ctx context.Context, userID, title string, category models.Category) (models.Task, error) {
	if !category.Valid() {
		return models.Task{}, ErrInvalidCategory
	}
	t := models.Task{
		ID:        s.newID(),
		UserID:    userID,
		Title:     title,
		Category:  category,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.CreateTask(ctx, &t); err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}
	s.wrote(ctx, userID)
	s.publish(ctx, models.ActionCreated, t)
	return t, nil
}

// Delete removes taskID. A missing task is not an error. With owner checks
// on, deleting someone else's task returns ErrForbidden.
func (s *Tasks) Delete(ctx context.Context, userID, taskID string) error {
	t, err := s.store.GetTask(ctx, taskID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}
	if t.UserID != userID {
		if s.requireOwner {
			logger.Warn(ctx, "Delete of foreign task refused", "task_id", taskID, "user_id", userID)
			return ErrForbidden
		}
		logger.Warn(ctx, "Deleting task owned by another user", "task_id", taskID, "user_id", userID, "owner_id", t.UserID)
	}
	if err := s.store.DeleteTask(ctx, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	s.wrote(ctx, t.UserID)
	s.publish(ctx, models.ActionDeleted, t)
	return nil
}

func (s *Tasks) publish(ctx context.Context, action string, t models.Task) {
	if s.events == nil {
		return
	}
	ev := &models.TaskEvent{
		Action:     action,
		TaskID:     t.ID,
		UserID:     t.UserID,
		OccurredAt: s.now().UTC(),
	}
	if err := s.events.PublishTaskEvent(ctx, ev); err != nil {
		logger.Error(ctx, "Publish task event failed", "error", err, "action", action, "task_id", t.ID)
	}
}

type noopCache struct{}

func (noopCache) GetTasks(context.Context, string) ([]models.Task, bool) { return nil, false }
func (noopCache) SetTasks(context.Context, string, []models.Task)        {}
func (noopCache) InvalidateTasks(context.Context, string)                {}
