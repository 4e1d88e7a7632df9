package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/neilberkman/cclearn/internal/core/config"
	"github.com/neilberkman/cclearn/internal/core/logging"
	"github.com/neilberkman/cclearn/internal/core/selector"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	verbose     bool
	logsDir     string
	hours       int
	since       string
	versionInfo string
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cclearn",
	Short: "Mentoring digests from your Claude Code sessions",
	Long: `cclearn - turn the last day of Claude Code sessions into a mentoring digest

Reads session transcripts from ~/.claude/projects, asks Gemini (with Google
Search grounding) what you learned and what to practice next, and posts the
digest to Slack.

Environment:
  GEMINI_API_KEY      API key for the summarization model (required)
  SLACK_WEBHOOK_URL   Incoming webhook for delivery
  CCLEARN_PROVIDER    gemini (default) or bedrock
  LOG_LEVEL           debug, info, warn or error

A .env file in the working directory is loaded first.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to a full run if no subcommand specified
		return runCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/cclearn/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().StringVar(&logsDir, "dir", "", "Session transcript directory (default ~/.claude/projects)")
	rootCmd.PersistentFlags().IntVar(&hours, "hours", 0, "Lookback window in hours (default 24)")
	rootCmd.PersistentFlags().StringVar(&since, "since", "", `Start of the window, e.g. "yesterday 9am" or 2026-10-01`)

	// The root command runs the pipeline too, so it takes the run flags
	addRunFlags(rootCmd)
}

// loadConfig builds the configuration from flags and sets up logging. The
// returned function closes the log file.
func loadConfig(stderr io.Writer, provider, model string) (config.Config, func(), error) {
	overrides := config.Overrides{
		LogsDir:  logsDir,
		Provider: provider,
		Model:    model,
		Verbose:  verbose,
	}

	switch {
	case since != "" && hours > 0:
		return config.Config{}, func() {}, fmt.Errorf("use either --since or --hours, not both")
	case since != "":
		window, err := selector.WindowSince(since, time.Now())
		if err != nil {
			return config.Config{}, func() {}, err
		}
		overrides.Window = window
	case hours < 0:
		return config.Config{}, func() {}, fmt.Errorf("--hours must be positive")
	case hours > 0:
		overrides.Window = time.Duration(hours) * time.Hour
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: configPath,
		Overrides:  overrides,
	})
	if err != nil {
		return cfg, func() {}, fmt.Errorf("failed to load config: %w", err)
	}

	closer, err := logging.Setup(stderr, cfg.LogLevel, cfg.LogFile)
	if err != nil {
		// Logging to stderr still works; the file is optional
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	}

	return cfg, func() { _ = closer.Close() }, nil
}

func newSelector(cfg config.Config) *selector.Selector {
	return selector.New(cfg.LogsDir, cfg.Window)
}
