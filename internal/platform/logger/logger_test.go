package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/srgjo27/staybook/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "prod", slog.LevelInfo)

	log.Info("booking saved", "id", 7)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "booking saved", record["msg"])
	assert.Equal(t, float64(7), record["id"])
	assert.Contains(t, record, "source")
}

func TestNewWithWriter_DevIsNotJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "dev", slog.LevelInfo)

	log.Info("booking saved")

	assert.Contains(t, buf.String(), "booking saved")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "prod", slog.LevelWarn)

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}
