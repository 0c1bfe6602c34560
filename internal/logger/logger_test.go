package logger

import (
	"testing"

	"note-quiz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGet_BeforeInitializeReturnsNop(t *testing.T) {
	Set(nil)
	l := Get()
	require.NotNil(t, l)
	assert.NotPanics(t, func() { l.Info("dropped") })
}

func TestInitialize_Levels(t *testing.T) {
	t.Cleanup(func() { Set(nil) })

	require.NoError(t, Initialize(config.LoggerConfig{Level: "debug", Env: "development"}))
	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Initialize(config.LoggerConfig{Level: "warn", Env: "production"}))
	assert.False(t, Get().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Get().Core().Enabled(zapcore.WarnLevel))

	assert.Error(t, Initialize(config.LoggerConfig{Level: "loud"}))
}

func TestSet_CapturesEntries(t *testing.T) {
	t.Cleanup(func() { Set(nil) })

	core, logs := observer.New(zapcore.InfoLevel)
	Set(zap.New(core))

	Get().Info("pipeline stage", zap.String("stage", "extract"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "pipeline stage", entry.Message)
	assert.Equal(t, "extract", entry.ContextMap()["stage"])
}
