package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestWithContextAddsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, SubjectKey, "ops@homely.ai")
	log.WithContext(ctx).UpstreamError("gemini", "market_news", errors.New("quota exceeded"))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if line["request_id"] != "req-1" || line["subject"] != "ops@homely.ai" {
		t.Fatalf("missing context fields: %v", line)
	}
	if line["msg"] != "upstream_error" || line["service"] != "gemini" || line["error"] != "quota exceeded" {
		t.Fatalf("unexpected record: %v", line)
	}
}

func TestWithContextWithoutValuesReturnsSameLogger(t *testing.T) {
	log := Discard()
	if log.WithContext(context.Background()) != log {
		t.Fatalf("expected the same logger when the context has no fields")
	}
}
