package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/bedrock"
)

// BedrockProvider implements Provider using AWS Bedrock. Bedrock models have
// no search grounding, so digests from this backend rely on the model alone.
type BedrockProvider struct {
	cfg BedrockConfig
	llm llms.Model
}

// BedrockConfig holds configuration for Bedrock provider
type BedrockConfig struct {
	Region          string // AWS region, defaults to us-east-1
	ModelID         string // Model ID, defaults to Claude 3.5 Haiku
	Profile         string // AWS profile name (optional)
	AccessKeyID     string // AWS access key ID (optional, for explicit creds)
	SecretAccessKey string // AWS secret access key (optional, for explicit creds)
	MaxTokens       int    // Defaults to 4096; mentoring digests are long
	BaseEndpoint    string // Override the runtime endpoint (tests)
}

// NewBedrockProvider creates a new Bedrock provider. AWS configuration is
// loaded on first use.
func NewBedrockProvider(cfg BedrockConfig) *BedrockProvider {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.ModelID == "" {
		cfg.ModelID = "anthropic.claude-3-5-haiku-20241022-v1:0"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4096
	}
	return &BedrockProvider{cfg: cfg}
}

func (p *BedrockProvider) init(ctx context.Context) error {
	if p.llm != nil {
		return nil
	}

	// Load AWS config
	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(p.cfg.Region))
	if p.cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(p.cfg.Profile))
	}
	if p.cfg.AccessKeyID != "" && p.cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(p.cfg.AccessKeyID, p.cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := bedrockruntime.NewFromConfig(awsCfg, func(o *bedrockruntime.Options) {
		if p.cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(p.cfg.BaseEndpoint)
		}
	})

	llm, err := bedrock.New(
		bedrock.WithModel(p.cfg.ModelID),
		bedrock.WithClient(client),
	)
	if err != nil {
		return fmt.Errorf("failed to create Bedrock LLM: %w", err)
	}

	p.llm = llm
	return nil
}

// GenerateText implements Provider
func (p *BedrockProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	if err := p.init(ctx); err != nil {
		return "", err
	}

	slog.Debug("calling bedrock", "model", p.cfg.ModelID, "region", p.cfg.Region, "prompt_chars", len(prompt))

	response, err := llms.GenerateFromSinglePrompt(ctx, p.llm, prompt,
		llms.WithMaxTokens(p.cfg.MaxTokens),
		llms.WithTemperature(0.3),
	)
	if err != nil {
		return "", fmt.Errorf("bedrock generation failed: %w", err)
	}
	return response, nil
}

// Name implements Provider
func (p *BedrockProvider) Name() string {
	return "bedrock"
}

// Model returns the Bedrock model ID
func (p *BedrockProvider) Model() string {
	return p.cfg.ModelID
}
