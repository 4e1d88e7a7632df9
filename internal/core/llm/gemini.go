package llm

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiConfig holds configuration for the Gemini provider
type GeminiConfig struct {
	APIKey    string // GEMINI_API_KEY
	Model     string // Defaults to gemini-2.5-flash
	Grounding bool   // Let the model consult Google Search while answering
	BaseURL   string // Override the API endpoint (tests)
}

// GeminiProvider implements Provider using the Gemini API
type GeminiProvider struct {
	cfg GeminiConfig
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(cfg GeminiConfig) *GeminiProvider {
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	return &GeminiProvider{cfg: cfg}
}

// GenerateText implements Provider. It makes a single blocking request.
func (p *GeminiProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	if p.cfg.APIKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY: %w", ErrMissingAPIKey)
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  p.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if p.cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: p.cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	config := &genai.GenerateContentConfig{}
	if p.cfg.Grounding {
		config.Tools = []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		}
	}

	slog.Debug("calling gemini", "model", p.cfg.Model, "grounding", p.cfg.Grounding, "prompt_chars", len(prompt))

	resp, err := client.Models.GenerateContent(ctx, p.cfg.Model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	return resp.Text(), nil
}

// Name implements Provider
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Model returns the model identifier requests are sent to
func (p *GeminiProvider) Model() string {
	return p.cfg.Model
}
