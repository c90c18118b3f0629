package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutput_JSON(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "debug")

	var buf bytes.Buffer
	log := NewWithOutput("civicsync", &buf)
	assert.Equal(t, logrus.DebugLevel, log.Logger.GetLevel())

	log.WithField("path", "/issues").Debug("request")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request", entry["message"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "civicsync", entry["service"])
	assert.Equal(t, "/issues", entry["path"])
	assert.Contains(t, entry, "timestamp")
}

func TestNewWithOutput_Levels(t *testing.T) {
	tests := map[string]logrus.Level{
		"":      logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"bogus": logrus.InfoLevel,
	}
	for value, want := range tests {
		t.Run(value, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", value)
			log := NewWithOutput("civicsync", &bytes.Buffer{})
			assert.Equal(t, want, log.Logger.GetLevel())
		})
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("dropped")
	assert.NotNil(t, log.Logger)
}
