package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/rustyeddy/tradejournal/config"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cfg   config.LogConfig
		level zapcore.Level
	}{
		{name: "json info", cfg: config.LogConfig{Level: "info", Encoding: "json"}, level: zapcore.InfoLevel},
		{name: "console debug", cfg: config.LogConfig{Level: "DEBUG", Encoding: "console", Development: true}, level: zapcore.DebugLevel},
		{name: "unknown level", cfg: config.LogConfig{Level: "chatty"}, level: zapcore.InfoLevel},
		{name: "empty", cfg: config.LogConfig{}, level: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			log, err := New(tt.cfg)
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.level))
			assert.False(t, log.Core().Enabled(tt.level-1))
		})
	}
}

func TestNewRejectsUnknownEncoding(t *testing.T) {
	t.Parallel()

	_, err := New(config.LogConfig{Encoding: "xml"})
	assert.Error(t, err)
}
