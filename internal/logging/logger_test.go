package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zerolog.Level{
		"":         zerolog.InfoLevel,
		"debug":    zerolog.DebugLevel,
		" WARN ":   zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"trace":    zerolog.TraceLevel,
		"info":     zerolog.InfoLevel,
		"disabled": zerolog.Disabled,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info", true)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("scene exported", "nodes", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "scene exported", rec["message"])
	assert.Equal(t, "sofia-scene", rec["module"])
	assert.EqualValues(t, 7, rec["nodes"])
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "chatty", false)
	assert.Error(t, err)
}
