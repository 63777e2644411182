package config

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LoggingConfig{Level: LogLevelWarn, Format: LogFormatJSON}.NewLogger(&buf, false)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	logger.Warn("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	verbose := LoggingConfig{Level: LogLevelError}.NewLogger(&buf, true)
	assert.True(t, verbose.Enabled(context.Background(), slog.LevelDebug))
}
