package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecoplate/internal/logging"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logging.ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, logging.ParseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, logging.ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, logging.ParseLevel("loud"))
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := logging.ComponentLogger(logging.NewLogger(logging.Config{Level: "info", Format: logging.FormatJSON}, &buf), "store")

	l.Debug().Msg("hidden")
	l.Info().Str("operation", "load").Msg("loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "store", entry["component"])
	assert.Equal(t, "load", entry["operation"])
	assert.Equal(t, "loaded", entry["message"])
}

func TestSetGlobal(t *testing.T) {
	saved := log.Logger
	t.Cleanup(func() { log.Logger = saved })

	var buf bytes.Buffer
	logging.SetGlobal(logging.NewLogger(logging.Config{Level: "warn", Format: logging.FormatJSON}, &buf))

	log.Debug().Msg("hidden")
	log.Info().Msg("hidden")
	assert.Zero(t, buf.Len(), "entries below the configured level are dropped")

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}

func TestNewLoggerWithPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ecoplate.log")
	res := logging.NewLoggerWithPath(logging.Config{Output: logging.OutputFile, File: path})
	defer func() { require.NoError(t, res.Close()) }()

	assert.True(t, res.UsingFile)
	assert.False(t, res.FallbackUsed)
	assert.Equal(t, path, res.FilePath)

	stderr := logging.NewLoggerWithPath(logging.Config{})
	assert.False(t, stderr.UsingFile)
	require.NoError(t, stderr.Close())
}

func TestContextHelpers(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewLogger(logging.Config{Format: logging.FormatJSON}, &buf)
	ctx := l.WithContext(context.Background())

	logging.FromContext(ctx).Info().Msg("via context")
	assert.Contains(t, buf.String(), "via context")

	assert.Equal(t, zerolog.Disabled, logging.FromContext(context.Background()).GetLevel())

	ctx = logging.ContextWithTraceID(ctx, "trace-1")
	assert.Equal(t, "trace-1", logging.GetOrGenerateTraceID(ctx))
	assert.Len(t, logging.GetOrGenerateTraceID(context.Background()), 26)
}
