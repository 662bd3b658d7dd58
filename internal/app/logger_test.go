package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		enabled zap.AtomicLevel
		wantErr bool
	}{
		{name: "Production", level: "production", enabled: zap.NewAtomicLevelAt(zap.InfoLevel)},
		{name: "Debug", level: "debug", enabled: zap.NewAtomicLevelAt(zap.DebugLevel)},
		{name: "Warn", level: "warn", enabled: zap.NewAtomicLevelAt(zap.WarnLevel)},
		{name: "Unknown level", level: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initLogger(tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, logger)
				return
			}

			require.NoError(t, err)
			lvl := tt.enabled.Level()
			assert.True(t, logger.Core().Enabled(lvl))
			if lvl > zap.DebugLevel {
				assert.False(t, logger.Core().Enabled(lvl-1))
			}
		})
	}
}
