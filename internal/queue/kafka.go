package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"taskboard/internal/models"
	"taskboard/pkg/logger"
)

// EnsureTopic creates the task events topic with the given partitions (idempotent).
// Call at startup; if it fails (e.g. no broker or topic exists), app still runs.
func EnsureTopic(ctx context.Context, brokers []string, topic string, partitions int) {
	if len(brokers) == 0 {
		return
	}
	conn, err := kafka.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		logger.Debug(ctx, "Kafka dial for topic creation failed", "error", err)
		return
	}
	defer conn.Close()
	controller, err := conn.Controller()
	if err != nil {
		logger.Debug(ctx, "Kafka controller lookup failed", "error", err)
		return
	}
	ctrlConn, err := kafka.DialContext(ctx, "tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	if err != nil {
		logger.Debug(ctx, "Kafka controller dial failed", "error", err)
		return
	}
	defer ctrlConn.Close()
	err = ctrlConn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     partitions,
		ReplicationFactor: 1,
	})
	if err != nil {
		logger.Debug(ctx, "Kafka create topic failed (topic may already exist)", "error", err)
		return
	}
	logger.Info(ctx, "Kafka topic ensured", "topic", topic, "partitions", partitions)
}

// Publisher writes task events to Kafka.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher returns an async publisher for topic.
func NewPublisher(ctx context.Context, brokers []string, topic string) *Publisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 0,
		Async:        true,
		RequiredAcks: kafka.RequireOne,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error(context.Background(), "Kafka async write failed", "error", err, "count", len(messages))
			}
		},
	}
	logger.Info(ctx, "Kafka producer initialized", "topic", topic, "brokers", brokers)
	return &Publisher{writer: w}
}

// PublishTaskEvent publishes a task event. Non-blocking with the async writer.
func (p *Publisher) PublishTaskEvent(ctx context.Context, ev *models.TaskEvent) error {
	if p == nil || p.writer == nil {
		return nil
	}
	msg, err := EncodeTaskEvent(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

// Close flushes pending messages.
func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// EncodeTaskEvent builds the Kafka message for ev. The key is the owner id so
// one user's events land on one partition in order.
func EncodeTaskEvent(ev *models.TaskEvent) (kafka.Message, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode task event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(ev.UserID),
		Value: payload,
	}, nil
}

// DecodeTaskEvent parses a message value produced by EncodeTaskEvent.
func DecodeTaskEvent(value []byte) (models.TaskEvent, error) {
	var ev models.TaskEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		return models.TaskEvent{}, fmt.Errorf("decode task event: %w", err)
	}
	return ev, nil
}
