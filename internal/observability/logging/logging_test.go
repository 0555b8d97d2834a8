package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestValidateAndExtractRequestID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKeep bool
	}{
		{name: "valid uuid", input: "5b0b8a3e-1f0c-4b6c-9c1a-3d8f8f6b2a10", wantKeep: true},
		{name: "valid token", input: "req_123.abc", wantKeep: true},
		{name: "empty", input: "", wantKeep: false},
		{name: "contains spaces", input: "bad id", wantKeep: false},
		{name: "header injection", input: "id\r\nx-evil: 1", wantKeep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateAndExtractRequestID(tt.input)
			if tt.wantKeep && got != tt.input {
				t.Errorf("got %q, want %q", got, tt.input)
			}
			if !tt.wantKeep && (got == tt.input || got == "") {
				t.Errorf("expected a generated id, got %q", got)
			}
		})
	}
}

func TestHandler_StampsContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, HandlerConfig{
		Service:       ServiceInfo{Name: "wake-walk-alert", Version: "test"},
		Environment:   EnvDev,
		DefaultModule: Module("default"),
	}))

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithModule(ctx, Module("alert"))
	logger.InfoContext(ctx, "hello", slog.Int("n", 1))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log line: %v", err)
	}

	want := map[string]any{
		"message":    "hello",
		"severity":   "INFO",
		"service":    "wake-walk-alert",
		"version":    "test",
		"env":        "dev",
		"module":     "alert",
		"request_id": "req-1",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s: got %v, want %v", k, entry[k], v)
		}
	}
}

func TestHandler_DefaultModule(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, HandlerConfig{
		Service:       ServiceInfo{Name: "svc"},
		DefaultModule: Module("wake-walk-alert"),
		Level:         slog.LevelWarn,
	}))

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info record should be filtered at warn level, got %s", buf.String())
	}

	logger.Warn("kept")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log line: %v", err)
	}
	if entry["module"] != "wake-walk-alert" {
		t.Errorf("module: got %v, want wake-walk-alert", entry["module"])
	}
	if _, ok := entry["request_id"]; ok {
		t.Error("request_id should be absent without a request context")
	}
}
