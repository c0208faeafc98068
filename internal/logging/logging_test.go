package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevel(t *testing.T) {
	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"bogus", log.InfoLevel},
		{"", log.InfoLevel},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			l := New(&bytes.Buffer{}, tc.level, "test")
			assert.Equal(t, tc.want, l.GetLevel())
		})
	}
}

func TestNewWritesPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info", "match3")

	l.Info("board dealt", "width", 6)
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "match3")
	assert.Contains(t, out, "board dealt")
	assert.Contains(t, out, "width=6")
	assert.NotContains(t, out, "hidden")
}

func TestOpenFileEmptyPathDiscards(t *testing.T) {
	l, closeFn, err := OpenFile("", "debug", "x")

	require.NoError(t, err)
	require.NotNil(t, l)
	assert.NoError(t, closeFn())
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "match3.log")

	l, closeFn, err := OpenFile(path, "info", "match3")
	require.NoError(t, err)
	l.Info("first")
	require.NoError(t, closeFn())

	l, closeFn, err = OpenFile(path, "info", "match3")
	require.NoError(t, err)
	l.Info("second")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
}
