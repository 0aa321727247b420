package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestFromContextDefaultsToPackageLogger(t *testing.T) {
	if FromContext(context.Background()) != defaultLogger {
		t.Fatal("expected default logger for empty context")
	}
}

func TestWithRequestIDTagsRecords(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), newJSONLogger(&buf, slog.LevelDebug))
	ctx = WithRequestID(ctx, "req-1")

	Info(ctx, "hello", "k", "v")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if record["request_id"] != "req-1" {
		t.Fatalf("expected request_id req-1, got %v", record["request_id"])
	}
	if record["k"] != "v" {
		t.Fatalf("expected k=v, got %v", record["k"])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
