package worker

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/segmentio/kafka-go"

	"taskboard/internal/models"
	"taskboard/internal/queue"
	"taskboard/pkg/logger"
)

const groupID = "task-cache-warmers"

// CacheRefresher reloads a user's tasks from the store into the cache.
// *service.Tasks implements it.
type CacheRefresher interface {
	Refresh(ctx context.Context, userID string) ([]models.Task, error)
}

// Warmer refreshes a user's cached task list after each task event.
type Warmer struct {
	tasks CacheRefresher
}

// NewWarmer returns a Warmer that re-warms through tasks.
func NewWarmer(tasks CacheRefresher) *Warmer {
	return &Warmer{tasks: tasks}
}

// Run starts the Kafka consumer: reads task events and re-warms the owner's cached list.
// One consumer per process; scale by running more replicas (consumer group shares partitions).
func (w *Warmer) Run(ctx context.Context, brokers []string, topic string) {
	if len(brokers) == 0 {
		logger.Info(ctx, "Worker disabled (no Kafka brokers)")
		return
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	var processed int64
	logger.Info(ctx, "Kafka consumer started", "topic", topic)
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info(ctx, "Kafka consumer stopped", "processed", atomic.LoadInt64(&processed))
				return
			}
			logger.Error(ctx, "Worker fetch failed", "error", err)
			continue
		}
		if err := w.HandleMessage(ctx, msg.Value); err != nil {
			logger.Error(ctx, "Worker handle failed", "error", err, "payload", string(msg.Value))
			// Commit anyway to avoid poison pill blocking the partition
			_ = reader.CommitMessages(ctx, msg)
			continue
		}
		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Error(ctx, "Worker commit failed", "error", err)
		}
		atomic.AddInt64(&processed, 1)
	}
}

// HandleMessage decodes one event and rewrites the owner's cached list from
// the store.
func (w *Warmer) HandleMessage(ctx context.Context, payload []byte) error {
	ev, err := queue.DecodeTaskEvent(payload)
	if err != nil {
		return err
	}
	if ev.UserID == "" {
		return fmt.Errorf("task event %q has no user id", ev.TaskID)
	}
	tasks, err := w.tasks.Refresh(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("reload tasks for %s: %w", ev.UserID, err)
	}
	logger.Debug(ctx, "Task cache warmed", "user_id", ev.UserID, "action", ev.Action, "count", len(tasks))
	return nil
}
