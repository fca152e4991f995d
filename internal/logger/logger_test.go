package logger

import (
	"bytes"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(FormatJSON, &buf)
	l.Info().Str("testID", "7").Msg("graded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "graded", entry["message"])
	assert.Equal(t, "7", entry["testID"])
}

func TestNewLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(FormatConsole, &buf)
	l.Info().Str("testID", "7").Msg("graded")

	out := buf.String()
	assert.Contains(t, out, "graded")
	assert.Contains(t, out, "testID=7")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestSetLevelFallsBackToInfo(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	SetLevel("debug")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	SetLevel("loud")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
