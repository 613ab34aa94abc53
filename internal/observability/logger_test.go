package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"unknown", "unknown", slog.LevelInfo},
		{"empty", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestInitLogger(t *testing.T) {
	t.Run("json_format", func(t *testing.T) {
		InitLogger("info", "json")
		assert.NotNil(t, logger)
	})

	t.Run("text_format", func(t *testing.T) {
		InitLogger("info", "text")
		assert.NotNil(t, logger)
	})
}

func TestWithOperation(t *testing.T) {
	ctx := context.Background()
	ctx = WithOperation(ctx, "chat.get_all_rooms")

	assert.Equal(t, "chat.get_all_rooms", ctx.Value(operationKey))

	t.Run("overwrites_existing_operation", func(t *testing.T) {
		ctx := WithOperation(context.Background(), "old")
		ctx = WithOperation(ctx, "new")
		assert.Equal(t, "new", ctx.Value(operationKey))
	})
}

func TestWithUserID(t *testing.T) {
	ctx := WithUserID(context.Background(), "u1")
	assert.Equal(t, "u1", ctx.Value(userIDKey))
}

func TestFromContext(t *testing.T) {
	InitLogger("info", "text")

	t.Run("plain_context", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("with_operation_and_user", func(t *testing.T) {
		ctx := WithOperation(context.Background(), "account.login")
		ctx = WithUserID(ctx, "u1")
		assert.NotNil(t, FromContext(ctx))
	})

	t.Run("empty_values_are_ignored", func(t *testing.T) {
		ctx := WithOperation(context.Background(), "")
		assert.NotNil(t, FromContext(ctx))
	})

	t.Run("falls_back_to_default_when_uninitialized", func(t *testing.T) {
		savedLogger := logger
		defer func() { logger = savedLogger }()
		logger = nil

		assert.Equal(t, slog.Default(), FromContext(context.Background()))
	})
}

func TestLoggingFunctions(t *testing.T) {
	InitLogger("debug", "text")

	assert.NotPanics(t, func() {
		Info("info message", "key", "value")
		Warn("warn message")
		Error("error message", "error", "boom")
		Debug("debug message")
	})

	t.Run("uninitialized_logger_does_not_panic", func(t *testing.T) {
		savedLogger := logger
		defer func() { logger = savedLogger }()
		logger = nil

		assert.NotPanics(t, func() {
			Info("message")
			Warn("message")
			Error("message")
			Debug("message")
		})
	})
}
