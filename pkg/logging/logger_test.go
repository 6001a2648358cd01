package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDir points the package at a temporary log directory and resets
// global state, restoring everything on cleanup.
func setupTestDir(t *testing.T) {
	t.Helper()

	tempDir := t.TempDir()

	origLogDir := logDir
	origInitErr := initErr
	origInitOnce := initOnce
	origSessionID := sessionID
	origSessionIDOnce := sessionIDOnce

	logDir = tempDir
	initErr = nil
	initOnce = sync.Once{}
	initOnce.Do(func() {}) // mark as initialized so NewLogger uses tempDir
	sessionID = ""
	sessionIDOnce = sync.Once{}

	t.Cleanup(func() {
		logDir = origLogDir
		initErr = origInitErr
		initOnce = origInitOnce
		sessionID = origSessionID
		sessionIDOnce = origSessionIDOnce
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"nonsense", LevelInfo},
		{"  debug  ", LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
}

func TestNewLoggerWritesToFile(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("test-component")
	require.NoError(t, err)
	defer logger.Close()

	logger.Infof("hello %s", "world")

	require.NotEmpty(t, logger.LogPath())
	data, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "[test-component]")
	assert.Contains(t, content, "[INFO]")
	assert.Contains(t, content, "hello world")
}

func TestLoggerLevelFiltering(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("filter")
	require.NoError(t, err)
	defer logger.Close()

	logger.SetLevel(LevelWarn)
	logger.Debugf("not written")
	logger.Infof("also not written")
	logger.Warnf("written warn")
	logger.Errorf("written error")

	data, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)

	content := string(data)
	assert.NotContains(t, content, "not written")
	assert.Contains(t, content, "written warn")
	assert.Contains(t, content, "written error")
}

func TestLoggersShareSessionFile(t *testing.T) {
	setupTestDir(t)

	first, err := NewLogger("one")
	require.NoError(t, err)
	defer first.Close()

	second, err := NewLogger("two")
	require.NoError(t, err)
	defer second.Close()

	assert.Equal(t, first.SessionID(), second.SessionID())
	assert.Equal(t, first.LogPath(), second.LogPath())
	assert.True(t, strings.HasSuffix(first.LogPath(), "-surf.log"))
	assert.Equal(t, logDir, filepath.Dir(first.LogPath()))
}

func TestLoggerCloseIdempotent(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("closer")
	require.NoError(t, err)

	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())
}
