// Package llm provides the model configuration and the chat client used by
// the resume assistant.
package llm

import (
	"fmt"
	"os"
)

// ModelTier picks a model by the job it does
type ModelTier string

const (
	// TierLite transcribes dictated audio
	TierLite ModelTier = "lite"
	// TierStandard answers assistant chat
	TierStandard ModelTier = "standard"
)

// Model is the Gemini model and generation settings used for a tier
type Model struct {
	Name            string
	Temperature     float32
	MaxOutputTokens int32 // 0 leaves the model default
}

// Config maps each tier to its model
type Config struct {
	Tiers map[ModelTier]Model
}

// modelEnv names the variables that replace a tier's model name
var modelEnv = map[ModelTier]string{
	TierStandard: "GEMINI_CHAT_MODEL",
	TierLite:     "GEMINI_TRANSCRIBE_MODEL",
}

// DefaultConfig returns the built-in Gemini models. Transcription runs
// cold so the text stays close to what was said.
func DefaultConfig() *Config {
	return &Config{
		Tiers: map[ModelTier]Model{
			TierStandard: {Name: "gemini-2.5-flash", Temperature: 0.7, MaxOutputTokens: 2048},
			TierLite:     {Name: "gemini-2.5-flash-lite", Temperature: 0},
		},
	}
}

// ConfigFromEnv returns DefaultConfig with any GEMINI_*_MODEL overrides applied
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	for tier, key := range modelEnv {
		if name := os.Getenv(key); name != "" {
			cfg = cfg.WithModel(tier, name)
		}
	}
	return cfg
}

// Resolve returns the model for tier. A tier without its own entry borrows
// the standard model.
func (c *Config) Resolve(tier ModelTier) (Model, error) {
	if m, ok := c.Tiers[tier]; ok && m.Name != "" {
		return m, nil
	}
	if m, ok := c.Tiers[TierStandard]; ok && m.Name != "" {
		return m, nil
	}
	return Model{}, fmt.Errorf("no model configured for tier %s", tier)
}

// ModelName is the name Resolve picks for tier, or "" when none is configured
func (c *Config) ModelName(tier ModelTier) string {
	m, _ := c.Resolve(tier)
	return m.Name
}

// WithModel returns a copy of c whose tier uses the named model. The tier
// keeps its generation settings.
func (c *Config) WithModel(tier ModelTier, name string) *Config {
	tiers := make(map[ModelTier]Model, len(c.Tiers)+1)
	for k, v := range c.Tiers {
		tiers[k] = v
	}
	m := tiers[tier]
	m.Name = name
	tiers[tier] = m
	return &Config{Tiers: tiers}
}
