package config

import (
	"log"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, zerolog.DebugLevel, logLevel("development"))
	assert.Equal(t, zerolog.InfoLevel, logLevel("Production"))

	t.Setenv("LOG_LEVEL", "WARN")
	assert.Equal(t, zerolog.WarnLevel, logLevel("production"))

	t.Setenv("LOG_LEVEL", "loud")
	assert.Equal(t, zerolog.DebugLevel, logLevel("development"))
}

func TestInitLoggingWritesFile(t *testing.T) {
	prevWriter, prevLogger := LogWriter, Logger
	t.Cleanup(func() {
		LogWriter, Logger = prevWriter, prevLogger
		log.SetOutput(os.Stderr)
	})

	t.Setenv("LOG_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "")

	f, _ := InitLogging("production")
	require.NotNil(t, f)
	defer f.Close()

	Logger.Info().Str("employee_id", "GSS001").Msg("submission approved")
	Logger.Debug().Msg("hidden in production")

	raw, err := os.ReadFile(LogFilePath())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"employee_id":"GSS001"`)
	assert.Contains(t, string(raw), `"service":"employee-records-api"`)
	assert.NotContains(t, string(raw), "hidden in production")
}
