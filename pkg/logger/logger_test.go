package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestFieldsAreWritten(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf)

	l.Info("analysis done",
		String("symbol", "AAPL"),
		Int("bars", 250),
		Float64("confidence", 68.5),
		Bool("cached", false),
		Duration("elapsed", 1500*time.Millisecond),
		Strings("symbols", []string{"AAPL", "MSFT"}),
		Error(errors.New("late")),
	)

	m := decodeLine(t, &buf)
	assert.Equal(t, "analysis done", m["message"])
	assert.Equal(t, "info", m["level"])
	assert.Equal(t, "AAPL", m["symbol"])
	assert.Equal(t, 250.0, m["bars"])
	assert.Equal(t, 68.5, m["confidence"])
	assert.Equal(t, false, m["cached"])
	assert.Equal(t, 1500.0, m["elapsed"])
	assert.Equal(t, "AAPL, MSFT", m["symbols"])
	assert.Equal(t, "late", m["error"])
}

func TestWithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf).With(String("component", "backtest"))

	l.Warn("day skipped")
	m := decodeLine(t, &buf)
	assert.Equal(t, "backtest", m["component"])
	assert.Equal(t, "warn", m["level"])
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Info("x")
		l.Debug("x")
		l.Warn("x")
		l.Error("x", Error(errors.New("e")))
		assert.Nil(t, l.With(String("k", "v")))
	})
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud"})
	assert.Error(t, err)

	l, err := New(&Config{Level: "warn", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	assert.NotNil(t, l)
}
