package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/incomeclarity/clientstate/pkg/logger"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Run("defaults to JSON at info", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Debug("dropped")
		log.Info("kept", logger.StorageKey("income_clarity_session"))

		entry := decodeLine(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "kept", entry["msg"])
		assert.Equal(t, "income_clarity_session", entry["storage_key"])
	})

	t.Run("last format option wins", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger.New(logger.WithOutput(buf), logger.WithJSONFormatter(), logger.WithTextFormatter()).Info("plain")
		assert.Contains(t, buf.String(), "msg=plain")

		buf.Reset()
		logger.New(logger.WithOutput(buf), logger.WithTextFormatter(), logger.WithJSONFormatter()).Info("structured")
		assert.Equal(t, "structured", decodeLine(t, buf)["msg"])
	})

	t.Run("static attributes and level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithLevel(slog.LevelWarn),
			logger.WithAttr(logger.Component("cleanup")),
		)
		log.Info("dropped")
		assert.Empty(t, buf.String())

		log.Warn("kept")
		assert.Equal(t, "cleanup", decodeLine(t, buf)["component"])
	})

	t.Run("handler options override level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithLevel(slog.LevelError),
			logger.WithHandlerOptions(&slog.HandlerOptions{Level: slog.LevelDebug}),
		)
		log.Debug("visible")
		assert.Equal(t, "visible", decodeLine(t, buf)["msg"])
	})

	t.Run("nil output is ignored", func(t *testing.T) {
		assert.NotPanics(t, func() { logger.New(logger.WithOutput(nil)) })
	})

	t.Run("invalid format panics", func(t *testing.T) {
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})
}

func TestPresets(t *testing.T) {
	t.Run("development is text at debug", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger.New(logger.WithDevelopment("clientstate"), logger.WithOutput(buf)).Debug("msg")
		out := buf.String()
		assert.Contains(t, out, "level=DEBUG")
		assert.Contains(t, out, "service=clientstate")
		assert.Contains(t, out, "env=development")
	})

	t.Run("staging and production are JSON at info", func(t *testing.T) {
		for name, opt := range map[string]logger.Option{
			"staging":    logger.WithStaging("clientstate"),
			"production": logger.WithProduction("clientstate"),
		} {
			buf := &bytes.Buffer{}
			log := logger.New(opt, logger.WithOutput(buf))
			log.Debug("dropped")
			log.Info("msg")

			entry := decodeLine(t, buf)
			assert.Equal(t, name, entry["env"])
			assert.Equal(t, "clientstate", entry["service"])
		}
	})

	t.Run("empty service leaves defaults", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger.New(logger.WithDevelopment(""), logger.WithOutput(buf)).Info("msg")
		entry := decodeLine(t, buf)
		assert.NotContains(t, entry, "service")
		assert.NotContains(t, entry, "env")
	})
}

func TestSetAsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	buf := &bytes.Buffer{}
	logger.SetAsDefault(logger.New(logger.WithOutput(buf)))
	slog.Info("default")
	assert.Equal(t, "default", decodeLine(t, buf)["msg"])
}
