package logging

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestSetupWritesLogFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		log.SetOutput(os.Stderr)
	})

	logFile := filepath.Join(t.TempDir(), "logs", "tracker.log")
	logger, closeFn, err := Setup("info", logFile)
	require.NoError(t, err)

	logger.Info("added habit", "name", "Read")
	logger.Debug("hidden at info level")
	require.NoError(t, closeFn())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "added habit")
	assert.Contains(t, string(content), "name=Read")
	assert.NotContains(t, string(content), "hidden at info level")
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	_, _, err := Setup("loud", "")
	assert.Error(t, err)
}
