package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fractiz.log")
	log, err := New(Options{Path: path, Level: "debug"})
	require.NoError(t, err)

	log.Info("task generated", "mode", "add", "attempts", 3)
	log.Debug("provider selected", "api_key", "sk-secret", "input_tokens", 12)
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "task generated")
	assert.Contains(t, out, `"mode":"add"`)
	assert.NotContains(t, out, "sk-secret")
	assert.Contains(t, out, "[REDACTED]")
	assert.Contains(t, out, `"input_tokens":12`)
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fractiz.log")
	log, err := New(Options{Path: path, Level: "warn"})
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "hidden"))
	assert.Contains(t, string(data), "shown")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zap.InfoLevel, lvl)

	lvl, err = ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, zap.DebugLevel, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("FRACTIZ_LOG_FILE", "/tmp/x.log")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.log", p)

	dir := t.TempDir()
	t.Setenv("FRACTIZ_LOG_FILE", "")
	t.Setenv("XDG_STATE_HOME", dir)
	p, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fractiz", "fractiz.log"), p)
}

func TestNewNop(t *testing.T) {
	log := NewNop().With("session_id", "abc")
	log.Info("discarded")
	log.Error("discarded too")
}
