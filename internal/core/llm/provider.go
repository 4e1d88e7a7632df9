package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when a provider needs credentials that were not configured
var ErrMissingAPIKey = errors.New("API key is not set")

// Provider is the interface for LLM backends
type Provider interface {
	// GenerateText generates text from a prompt
	GenerateText(ctx context.Context, prompt string) (string, error)

	// Name returns the provider name (e.g., "gemini", "bedrock")
	Name() string
}

// ProviderConfig selects and configures a backend
type ProviderConfig struct {
	Name      string // "gemini" or "bedrock"
	Model     string // Empty means the backend default
	APIKey    string // Gemini API key
	Grounding bool   // Google Search grounding (gemini only)
	Region    string // AWS region (bedrock only)
	Profile   string // AWS profile (bedrock only)
}

// NewProvider builds the configured backend. Credentials are not checked
// until the first GenerateText call.
func NewProvider(cfg ProviderConfig) (Provider, error) {
	switch cfg.Name {
	case "", "gemini":
		return NewGeminiProvider(GeminiConfig{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			Grounding: cfg.Grounding,
		}), nil
	case "bedrock":
		return NewBedrockProvider(BedrockConfig{
			Region:  cfg.Region,
			ModelID: cfg.Model,
			Profile: cfg.Profile,
		}), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Name)
	}
}
