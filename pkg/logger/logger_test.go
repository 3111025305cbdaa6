package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureJSON(t *testing.T, level zerolog.Level) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	setup(buf, level)
	t.Cleanup(func() { setup(&bytes.Buffer{}, zerolog.InfoLevel) })
	return buf
}

func lines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, l := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if l == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(l), &m))
		out = append(out, m)
	}
	return out
}

func TestDebug_CarriesFields(t *testing.T) {
	buf := captureJSON(t, zerolog.DebugLevel)

	Debug("Health check passed", map[string]interface{}{"check": "Redis Connection"})

	entries := lines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "debug", entries[0]["level"])
	assert.Equal(t, "Health check passed", entries[0]["message"])
	assert.Equal(t, "Redis Connection", entries[0]["check"])
}

func TestDebug_SuppressedAtInfoLevel(t *testing.T) {
	buf := captureJSON(t, zerolog.InfoLevel)

	Debug("hidden", map[string]interface{}{"k": "v"})
	Info("shown", nil)

	entries := lines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["message"])
}

func TestErrorWithFields(t *testing.T) {
	buf := captureJSON(t, zerolog.InfoLevel)

	ErrorWithFields("Failed to send email", errors.New("dial tcp: timeout"), map[string]interface{}{"to": "a@b.com"})
	Warn("Redis connection failed", map[string]interface{}{})

	entries := lines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "error", entries[0]["level"])
	assert.Equal(t, "dial tcp: timeout", entries[0]["error"])
	assert.Equal(t, "a@b.com", entries[0]["to"])
	assert.Equal(t, "warn", entries[1]["level"])
}
