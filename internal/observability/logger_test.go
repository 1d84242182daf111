package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name  string
		json  bool
		debug bool
		level zapcore.Level
	}{
		{name: "console info", level: zapcore.InfoLevel},
		{name: "json debug", json: true, debug: true, level: zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.json, tt.debug)
			require.NoError(t, err)
			require.NotNil(t, logger)
			assert.True(t, logger.Core().Enabled(tt.level))
			assert.False(t, logger.Core().Enabled(tt.level-1))
		})
	}
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	logger := zap.NewExample()
	assert.Same(t, logger, OrNop(logger))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{name: "short", input: "  hello  ", limit: 10, want: "hello"},
		{name: "exact", input: "hello", limit: 5, want: "hello"},
		{name: "cut", input: "hello world", limit: 5, want: "hello..."},
		{name: "runes", input: "résumé text", limit: 6, want: "résumé..."},
		{name: "zero limit", input: "hello", limit: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.limit))
		})
	}
}

func TestTextField(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	long := make([]rune, DefaultTruncate+50)
	for i := range long {
		long[i] = 'a'
	}
	logger.Info("parsed", TextField("resume", string(long)))

	entries := observed.All()
	require.Len(t, entries, 1)
	value := entries[0].ContextMap()["resume"].(string)
	assert.Len(t, value, DefaultTruncate+3)
}
