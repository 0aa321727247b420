// Package mongo implements repository.Store on MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"taskboard/internal/models"
	"taskboard/internal/repository"
	"taskboard/pkg/logger"
)

const (
	usersCollection = "users"
	tasksCollection = "tasks"
)

// Store persists users and tasks as documents.
type Store struct {
	client *mongo.Client
	users  *mongo.Collection
	tasks  *mongo.Collection
}

var _ repository.Store = (*Store)(nil)

// New returns a Store over the named database and ensures its indexes.
func New(ctx context.Context, client *mongo.Client, database string) (*Store, error) {
	db := client.Database(database)
	s := &Store{
		client: client,
		users:  db.Collection(usersCollection),
		tasks:  db.Collection(tasksCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}
	_, err = s.tasks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create tasks owner index: %w", err)
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateEmail
		}
		logger.Error(ctx, "Repository CreateUser failed", "error", err)
		return err
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, repository.ErrNotFound
	}
	if err != nil {
		logger.Error(ctx, "Repository GetUserByEmail failed", "error", err)
		return models.User{}, err
	}
	return u, nil
}

// ListTasks returns the owner's tasks in natural (insertion) order.
func (s *Store) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	cur, err := s.tasks.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		logger.Error(ctx, "Repository ListTasks failed", "error", err)
		return nil, err
	}
	tasks := []models.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		logger.Error(ctx, "Repository decode tasks failed", "error", err)
		return nil, err
	}
	return tasks, nil
}

func (s *Store) CreateTask(ctx context.Context, t *models.Task) error {
	if _, err := s.tasks.InsertOne(ctx, t); err != nil {
		logger.Error(ctx, "Repository CreateTask failed", "error", err)
		return err
	}
	return nil
}

func (s *Store) GetTask(ctx context.Context, id string) (models.Task, error) {
	var t models.Task
	err := s.tasks.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Task{}, repository.ErrNotFound
	}
	if err != nil {
		logger.Error(ctx, "Repository GetTask failed", "error", err, "id", id)
		return models.Task{}, err
	}
	return t, nil
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.tasks.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		logger.Error(ctx, "Repository DeleteTask failed", "error", err, "id", id)
		return err
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}
