package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-datawriter/internal/config"
)

func TestSetupWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Info().Msg("hidden")
	log.Warn().Str("stage", "orders").Msg("visible")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "datawriter", entry["service"])
	assert.Equal(t, "orders", entry["stage"])
	assert.Equal(t, "warn", entry["level"])
}

func TestSetupWriter_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(config.LogConfig{Level: "nonsense", Format: "console"}, &buf)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	log.Debug().Msg("dropped")
	assert.Empty(t, buf.String())
}
