package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestNewConsoleFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Writer: &buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("daemon not reachable", "port", 4000)

	assert.Equal(t, "zowex: WARN daemon not reachable port=4000\n", buf.String())
}

func TestConsoleHandlerFormatsAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Writer: &buf, Color: boolPtr(false)})
	require.NoError(t, err)

	logger.With("action", "restart").WithGroup("poll").Debug("restart state",
		"from", "idle",
		"interval", 3*time.Second,
		"detail", "two words",
		"err", errors.New("boom"),
		slog.Group("daemon", "pid", 42),
	)

	assert.Equal(t,
		"zowex: DEBUG restart state action=restart poll.from=idle poll.interval=3s poll.detail=\"two words\" poll.err=boom poll.daemon.pid=42\n",
		buf.String())
}

func TestConsoleHandlerColorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Writer: &buf, Color: boolPtr(true)})
	require.NoError(t, err)

	logger.Error("failed")
	assert.Equal(t, "zowex: \x1b[31mERROR\x1b[0m failed\n", buf.String())
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Writer: &buf})
	require.NoError(t, err)

	logger.Info("started", "pid", 7)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "started", rec["msg"])
	assert.Equal(t, "INFO", rec["level"])
	assert.EqualValues(t, 7, rec["pid"])
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	_, err := New(Options{Format: "xml"})
	require.Error(t, err)

	_, err = New(Options{Level: "verbose"})
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelWarn,
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestNonFileWriterIsNotTerminal(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}
