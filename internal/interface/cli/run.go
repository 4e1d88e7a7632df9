package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/neilberkman/cclearn/internal/core/config"
	"github.com/neilberkman/cclearn/internal/core/console"
	"github.com/neilberkman/cclearn/internal/core/llm"
	"github.com/neilberkman/cclearn/internal/core/notify"
	"github.com/neilberkman/cclearn/internal/core/pipeline"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Summarize recent sessions and post the digest to Slack",
	Long: `Collect the sessions created in the lookback window, summarize them and
send the digest to the Slack webhook.

Examples:
  cclearn run                          Last 24 hours, post to Slack
  cclearn run --hours 72               Last three days
  cclearn run --since "monday 9am"     Everything since Monday morning
  cclearn run --dry-run --copy         Print the digest and copy it, don't post`,
	Args: cobra.NoArgs,
	RunE: runDigest,
}

var (
	runProvider string
	runModel    string
	runDryRun   bool
	runCopy     bool
)

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runProvider, "provider", "", "LLM provider: gemini or bedrock")
	cmd.Flags().StringVar(&runModel, "model", "", "Model ID (default gemini-2.5-flash)")
	cmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Print the summary instead of sending it")
	cmd.Flags().BoolVar(&runCopy, "copy", false, "Copy the summary to the clipboard")
}

func runDigest(cmd *cobra.Command, args []string) error {
	cfg, closeLog, err := loadConfig(cmd.ErrOrStderr(), runProvider, runModel)
	if err != nil {
		return err
	}
	defer closeLog()

	out := console.New(cmd.OutOrStdout())
	out.Info("cclearn %s", displayVersion())

	summarizer, err := newSummarizer(cfg)
	if err != nil {
		return err
	}
	notifier := notify.NewSlack(cfg.SlackWebhookURL, cfg.WebhookTimeout, out)

	// Ctrl-C aborts the in-flight request
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Debug("starting run", "dir", cfg.LogsDir, "window", cfg.Window, "provider", cfg.Provider, "model", cfg.Model, "notifier", notifier.String())

	p := pipeline.New(newSelector(cfg), summarizer, notifier, out, pipeline.Options{
		DryRun: runDryRun,
		Copy:   runCopy,
	})
	result, err := p.Run(ctx)
	if err != nil {
		return err
	}

	slog.Info("run finished",
		"files", result.Files,
		"transcript_chars", result.TranscriptChars,
		"summary_chars", result.SummaryChars,
		"delivered", result.Delivered,
		"skipped_lines", result.Stats.Skipped,
	)
	return nil
}

func newSummarizer(cfg config.Config) (*llm.Summarizer, error) {
	provider, err := llm.NewProvider(llm.ProviderConfig{
		Name:      cfg.Provider,
		Model:     cfg.Model,
		APIKey:    cfg.GeminiAPIKey,
		Grounding: cfg.Grounding,
		Region:    cfg.AWSRegion,
		Profile:   cfg.AWSProfile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	if cfg.Provider == config.ProviderBedrock && cfg.Grounding {
		slog.Warn("search grounding is not available on bedrock; continuing without it")
	}

	return llm.NewSummarizer(provider, cfg.PromptTemplate), nil
}

func displayVersion() string {
	if versionInfo == "" {
		return "dev"
	}
	return versionInfo
}
