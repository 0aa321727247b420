// Package firestore implements repository.Store on Cloud Firestore.
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"taskboard/internal/models"
	"taskboard/internal/repository"
	"taskboard/pkg/logger"
)

const (
	usersCollection = "users"
	tasksCollection = "tasks"
)

// Store persists users and tasks as Firestore documents keyed by id.
type Store struct {
	client *firestore.Client
}

var _ repository.Store = (*Store)(nil)

func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) users() *firestore.CollectionRef {
	return s.client.Collection(usersCollection)
}

func (s *Store) tasks() *firestore.CollectionRef {
	return s.client.Collection(tasksCollection)
}

// CreateUser checks for the email and creates the document in one
// transaction; Firestore has no unique indexes.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		iter := tx.Documents(s.users().Where("email", "==", u.Email).Limit(1))
		defer iter.Stop()
		_, err := iter.Next()
		if err == nil {
			return repository.ErrDuplicateEmail
		}
		if !errors.Is(err, iterator.Done) {
			return err
		}
		return tx.Create(s.users().Doc(u.ID), u)
	})
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return repository.ErrDuplicateEmail
	}
	if err != nil {
		logger.Error(ctx, "Repository CreateUser failed", "error", err)
		return err
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	iter := s.users().Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()
	doc, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return models.User{}, repository.ErrNotFound
	}
	if err != nil {
		logger.Error(ctx, "Repository GetUserByEmail failed", "error", err)
		return models.User{}, err
	}
	var u models.User
	if err := doc.DataTo(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// ListTasks returns the owner's tasks ordered by creation time.
func (s *Store) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	iter := s.tasks().
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	tasks := []models.Task{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			logger.Error(ctx, "Repository ListTasks failed", "error", err)
			return nil, err
		}
		var t models.Task
		if err := doc.DataTo(&t); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (s *Store) CreateTask(ctx context.Context, t *models.Task) error {
	if _, err := s.tasks().Doc(t.ID).Set(ctx, t); err != nil {
		logger.Error(ctx, "Repository CreateTask failed", "error", err)
		return err
	}
	return nil
}

func (s *Store) GetTask(ctx context.Context, id string) (models.Task, error) {
	if !validDocID(id) {
		return models.Task{}, repository.ErrNotFound
	}
	doc, err := s.tasks().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return models.Task{}, repository.ErrNotFound
	}
	if err != nil {
		logger.Error(ctx, "Repository GetTask failed", "error", err, "id", id)
		return models.Task{}, err
	}
	var t models.Task
	if err := doc.DataTo(&t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// DeleteTask removes a task. Deleting a missing document succeeds.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	if !validDocID(id) {
		return nil
	}
	if _, err := s.tasks().Doc(id).Delete(ctx); err != nil {
		logger.Error(ctx, "Repository DeleteTask failed", "error", err, "id", id)
		return err
	}
	return nil
}

// Ping lists at most one collection to confirm the client can reach the
// backend.
func (s *Store) Ping(ctx context.Context) error {
	iter := s.client.Collections(ctx)
	_, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil
	}
	return err
}

func (s *Store) Close() error {
	return s.client.Close()
}

// validDocID rejects ids that Firestore cannot address as a single document.
func validDocID(id string) bool {
	return strings.TrimSpace(id) != "" && !strings.Contains(id, "/")
}
