// Package llm provides the Gemini-backed extraction, analysis, and tailoring
// operations behind a small Client interface.
package llm

// ModelTier represents the complexity/capability level of a model.
type ModelTier string

const (
	// TierLite is for simple tasks: resume text extraction.
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: job posting analysis.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning: resume tailoring.
	TierAdvanced ModelTier = "advanced"
)

// Config maps model tiers to Gemini model names.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a given tier, falling back through
// standard and lite when the tier has no entry.
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
