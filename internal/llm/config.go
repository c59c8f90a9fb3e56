// Package llm provides the external generator abstraction and its Gemini
// implementation. The generator is an optional collaborator: every caller
// must work when it is absent, slow, or returns garbage.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, short extraction
	TierLite ModelTier = "lite"
	// TierStandard is for structured JSON generation
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long-form analysis and planning
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Supported providers
const (
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the engine
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, falling back to standard then
// lite when the tier is not configured
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
