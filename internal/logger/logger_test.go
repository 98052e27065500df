package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn", "orderline")

	l.Info().Msg("dropped")
	require.Zero(t, buf.Len())

	l.Warn().Uint("order_id", 3).Msg("kept")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "kept", entry["message"])
	require.Equal(t, "orderline", entry["service"])
	require.Equal(t, float64(3), entry["order_id"])
}

func TestNewWithWriter_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "not-a-level", "orderline")

	l.Debug().Msg("dropped")
	require.Zero(t, buf.Len())
	l.Info().Msg("kept")
	require.NotZero(t, buf.Len())
}
