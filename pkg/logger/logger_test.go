package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewLogger_JSONConsole(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(&Config{Level: "info", Format: "json"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("put watch", zap.String("watch_id", "w1"))
	require.NoError(t, l.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"put watch"`)
	assert.Contains(t, out, `"watch_id":"w1"`)

	EnableDebug()
	t.Cleanup(func() { _ = SetLevel("info") })
	l.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watcherctl.log")
	var console bytes.Buffer
	l, err := newLogger(&Config{Level: "warn", Format: "json", Output: "file", FilePath: path, MaxSize: 1}, zapcore.AddSync(&console))
	require.NoError(t, err)

	l.Warn("remote error", zap.Int("status", 404))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "remote error")
	assert.Empty(t, console.String())
}

func TestNewLogger_RejectsBadConfig(t *testing.T) {
	_, err := newLogger(&Config{Output: "file"}, zapcore.AddSync(&bytes.Buffer{}))
	assert.Error(t, err)

	_, err = newLogger(&Config{Output: "syslog"}, zapcore.AddSync(&bytes.Buffer{}))
	assert.Error(t, err)

	_, err = newLogger(&Config{Level: "verbose"}, zapcore.AddSync(&bytes.Buffer{}))
	assert.Error(t, err)
}
