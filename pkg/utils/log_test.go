package utils

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitLoggingHonorsFlags(t *testing.T) {
	prevLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prevLogger) })

	SetTestFlag(t, "log_handler_type", "json")
	SetTestFlag(t, "log_level", "debug")
	InitLogging()
	handler := slog.Default().Handler()
	assert.IsType(t, &slog.JSONHandler{}, handler)
	assert.True(t, handler.Enabled(context.Background(), slog.LevelDebug))

	SetTestFlag(t, "log_handler_type", "text")
	SetTestFlag(t, "log_level", "error")
	InitLogging()
	handler = slog.Default().Handler()
	assert.IsType(t, &slog.TextHandler{}, handler)
	assert.False(t, handler.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelError))
}
