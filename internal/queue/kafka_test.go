package queue

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/models"
)

func TestEncodeDecodeTaskEvent(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ev := &models.TaskEvent{Action: models.ActionCreated, TaskID: "t1", UserID: "u1", OccurredAt: at}

	msg, err := EncodeTaskEvent(ev)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(msg.Key) != "u1" {
		t.Fatalf("expected key u1, got %q", msg.Key)
	}

	got, err := DecodeTaskEvent(msg.Value)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Action != ev.Action || got.TaskID != ev.TaskID || got.UserID != ev.UserID || !got.OccurredAt.Equal(at) {
		t.Fatalf("unexpected event %+v", got)
	}
}

func TestDecodeTaskEventRejectsGarbage(t *testing.T) {
	if _, err := DecodeTaskEvent([]byte("{")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestNilPublisherIsNoop(t *testing.T) {
	var p *Publisher
	if err := p.PublishTaskEvent(context.Background(), &models.TaskEvent{}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
