package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	chat, err := cfg.Resolve(TierStandard)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", chat.Name)
	assert.Equal(t, float32(0.7), chat.Temperature)

	lite, err := cfg.Resolve(TierLite)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash-lite", lite.Name)
	assert.Zero(t, lite.Temperature)
}

func TestResolve_FallsBackToStandard(t *testing.T) {
	cfg := &Config{Tiers: map[ModelTier]Model{TierStandard: {Name: "chat-model"}}}
	assert.Equal(t, "chat-model", cfg.ModelName(TierLite))
}

func TestResolve_NothingConfigured(t *testing.T) {
	cfg := &Config{Tiers: map[ModelTier]Model{TierLite: {Name: "lite-only"}}}

	_, err := cfg.Resolve("unknown")
	assert.ErrorContains(t, err, "no model configured")
	assert.Equal(t, "", cfg.ModelName("unknown"))
	assert.Equal(t, "lite-only", cfg.ModelName(TierLite))
}

func TestWithModel(t *testing.T) {
	cfg := DefaultConfig()
	custom := cfg.WithModel(TierStandard, "custom-model")

	assert.Equal(t, "gemini-2.5-flash", cfg.ModelName(TierStandard), "original is unchanged")
	m, err := custom.Resolve(TierStandard)
	require.NoError(t, err)
	assert.Equal(t, "custom-model", m.Name)
	assert.Equal(t, float32(0.7), m.Temperature, "settings are kept")
	assert.Equal(t, "gemini-2.5-flash-lite", custom.ModelName(TierLite))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("GEMINI_CHAT_MODEL", "gemini-2.5-pro")
	t.Setenv("GEMINI_TRANSCRIBE_MODEL", "")

	cfg := ConfigFromEnv()
	assert.Equal(t, "gemini-2.5-pro", cfg.ModelName(TierStandard))
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.ModelName(TierLite))
}
