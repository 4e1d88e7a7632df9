package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// NoDataSummary is returned instead of calling the provider when there is no transcript
const NoDataSummary = "No conversation data available"

// Summarizer turns a combined transcript into a mentoring digest
type Summarizer struct {
	provider Provider
	template string
}

// NewSummarizer creates a new summarizer with the given provider. An empty
// template uses DefaultPromptTemplate.
func NewSummarizer(provider Provider, template string) *Summarizer {
	return &Summarizer{provider: provider, template: template}
}

// Summarize sends the transcript to the provider once and returns its answer
// verbatim. Provider errors are returned as-is (wrapped); there is no retry.
func (s *Summarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if transcript == "" {
		return NoDataSummary, nil
	}

	prompt, err := s.Prompt(transcript)
	if err != nil {
		return "", err
	}

	slog.Info("requesting summary", "provider", s.provider.Name(), "prompt_chars", len(prompt))

	summary, err := s.provider.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}
	return summary, nil
}

// Prompt renders the full prompt for a transcript
func (s *Summarizer) Prompt(transcript string) (string, error) {
	return RenderPrompt(s.template, transcript)
}

// ProviderName returns the backend name for progress messages
func (s *Summarizer) ProviderName() string {
	return s.provider.Name()
}
