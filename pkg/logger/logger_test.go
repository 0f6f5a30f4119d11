package logger

import (
	"bytes"
	"context"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("Should return logger from context when present", func(t *testing.T) {
		expectedLogger := NewLogger(TestConfig())
		ctx := ContextWithLogger(context.Background(), expectedLogger)

		actualLogger := FromContext(ctx)

		require.NotNil(t, actualLogger)
		assert.Equal(t, expectedLogger, actualLogger)
	})

	t.Run("Should return fallback logger when no logger in context", func(t *testing.T) {
		log := FromContext(context.Background())

		require.NotNil(t, log)
		log.Info("test message from fallback logger")
	})

	t.Run("Should return fallback logger when nil logger in context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), LoggerCtxKey, (Logger)(nil))

		log := FromContext(ctx)

		require.NotNil(t, log)
		log.Info("test message from fallback logger")
	})
}

func TestLogLevel_ToCharmlogLevel(t *testing.T) {
	t.Run("Should convert all log levels to charm log levels", func(t *testing.T) {
		testCases := []struct {
			level    LogLevel
			expected charmlog.Level
		}{
			{DebugLevel, charmlog.DebugLevel},
			{InfoLevel, charmlog.InfoLevel},
			{WarnLevel, charmlog.WarnLevel},
			{ErrorLevel, charmlog.ErrorLevel},
			{LogLevel("bogus"), charmlog.InfoLevel},
		}
		for _, tc := range testCases {
			assert.Equal(t, tc.expected, tc.level.ToCharmlogLevel(), "level %q", tc.level)
		}
	})
}

func TestLogger_Output(t *testing.T) {
	t.Run("Should write structured keyvals to the configured output", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewLogger(&Config{Level: DebugLevel, Output: &buf, TimeFormat: "15:04:05"})

		log.Info("discovered tasks", "count", 3)

		assert.Contains(t, buf.String(), "discovered tasks")
		assert.Contains(t, buf.String(), "count=3")
	})

	t.Run("Should emit JSON when configured", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewLogger(&Config{Level: InfoLevel, Output: &buf, JSON: true})

		log.Warn("change query failed", "task", "ci:build")

		assert.Contains(t, buf.String(), `"msg":"change query failed"`)
		assert.Contains(t, buf.String(), `"task":"ci:build"`)
	})

	t.Run("Should carry With fields on child loggers", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewLogger(&Config{Level: InfoLevel, Output: &buf})

		log.With("component", "discover").Info("starting")

		assert.Contains(t, buf.String(), "component=discover")
	})
}
