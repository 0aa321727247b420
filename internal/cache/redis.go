package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"taskboard/internal/models"
	"taskboard/pkg/logger"
)

const tasksKeyPrefix = "tasks:user:"

// NewClient parses url, applies poolSize and pings the server.
func NewClient(ctx context.Context, url string, poolSize int) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if poolSize > 0 {
		opts.PoolSize = poolSize
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	logger.Info(ctx, "Redis client initialized", "pool_size", opts.PoolSize)
	return client, nil
}

// TaskCache stores each user's task list as one JSON value. A nil
// *TaskCache is a valid, always-missing cache.
type TaskCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New returns a TaskCache writing entries with the given TTL.
func New(client *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{client: client, ttl: ttl}
}

// TasksKey returns the cache key for a user's task list.
func TasksKey(userID string) string {
	return tasksKeyPrefix + userID
}

// GetTasks reads a user's task list. Returns (nil, false) on miss or error.
func (c *TaskCache) GetTasks(ctx context.Context, userID string) ([]models.Task, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	b, err := c.client.Get(ctx, TasksKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		logger.Debug(ctx, "Redis get tasks failed", "error", err)
		return nil, false
	}
	tasks := []models.Task{}
	if err := json.Unmarshal(b, &tasks); err != nil {
		logger.Debug(ctx, "Redis unmarshal tasks failed", "error", err)
		return nil, false
	}
	return tasks, true
}

// SetTasks writes a user's task list with the configured TTL.
func (c *TaskCache) SetTasks(ctx context.Context, userID string, tasks []models.Task) {
	if c == nil || c.client == nil {
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		logger.Debug(ctx, "Marshal tasks for cache failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, TasksKey(userID), b, c.ttl).Err(); err != nil {
		logger.Debug(ctx, "Redis set tasks failed", "error", err)
	}
}

// InvalidateTasks deletes the user's cached list so the next read goes to the store.
func (c *TaskCache) InvalidateTasks(ctx context.Context, userID string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, TasksKey(userID)).Err(); err != nil {
		logger.Debug(ctx, "Redis invalidate tasks failed", "error", err)
	}
}

// Ping reports whether Redis is reachable. A nil cache is always reachable.
func (c *TaskCache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the Redis client.
func (c *TaskCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
