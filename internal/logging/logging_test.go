package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFor(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestSetupWritesComponent(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.WarnLevel)

	var buf bytes.Buffer
	Setup(1, &buf)

	logger := GetLogger("patch")
	logger.Info().Str("rule", "manifest").Msg("applied")
	logger.Debug().Msg("hidden at info level")

	out := buf.String()
	assert.Contains(t, out, "applied")
	assert.Contains(t, out, "component=patch")
	assert.NotContains(t, out, "hidden at info level")
}
