package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		mode  string
		level string
	}{
		{name: "development", mode: "development", level: "debug"},
		{name: "production", mode: "production", level: "warn"},
		{name: "unknown level falls back to info", mode: "prod", level: "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.mode, tt.level)
			require.NoError(t, err)
			assert.NotNil(t, l.SugaredLogger)
		})
	}
}

func TestLogger_With(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := FromZap(zap.New(core)).With("transcript_id", "tr-1")

	l.Info("impression recorded", "count", 2)
	l.Debug("dropped below level")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "impression recorded", entries[0].Message)
	assert.Equal(t, "tr-1", entries[0].ContextMap()["transcript_id"])
	assert.EqualValues(t, 2, entries[0].ContextMap()["count"])
}
