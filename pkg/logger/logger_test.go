package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeep/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	t.Run("development logger with debug level", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("production logger with default level", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Production, "")
		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("invalid level", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "loud")
		require.Error(t, err)
		assert.Nil(t, log)
	})
}

func TestFromContext(t *testing.T) {
	t.Run("success when logger exists in context", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), testLogger)

		retrievedLogger, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, retrievedLogger)
	})

	t.Run("error when no logger in context", func(t *testing.T) {
		retrievedLogger, err := logger.FromContext(context.Background())
		require.Error(t, err)
		assert.Nil(t, retrievedLogger)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})
}

func TestLogFallback(t *testing.T) {
	log := logger.Log(context.Background())
	assert.NotNil(t, log, "Log should always return a usable logger")
}

func TestRequestIDContext(t *testing.T) {
	t.Run("generates id when empty", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")
		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.NotEmpty(t, id)
	})

	t.Run("keeps provided id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-42")
		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "req-42", id)
	})

	t.Run("absent without context value", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})
}
