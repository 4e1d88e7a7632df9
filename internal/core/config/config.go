package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	ProviderGemini  = "gemini"
	ProviderBedrock = "bedrock"

	DefaultProvider = ProviderGemini
	DefaultModel    = "gemini-2.5-flash"
	DefaultHours    = 24
)

// Config is built once at startup and passed down by value. Nothing mutates it
// after Load returns.
type Config struct {
	LogsDir string        // Root of the Claude Code transcript tree
	Window  time.Duration // Lookback window for session files

	Provider     string // "gemini" or "bedrock"
	Model        string // Empty means the provider default
	GeminiAPIKey string
	Grounding    bool // Enable Google Search grounding (gemini only)
	AWSRegion    string
	AWSProfile   string

	SlackWebhookURL string
	WebhookTimeout  time.Duration // Zero means no client timeout

	PromptTemplate string // Empty means the built-in template
	PromptPath     string // Where a custom template was read from, if any

	LogLevel string
	LogFile  string
}

// Overrides holds values from command-line flags. Zero values are ignored.
type Overrides struct {
	LogsDir  string
	Window   time.Duration
	Provider string
	Model    string
	Verbose  bool
}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	ConfigDir  string // Defaults to ~/.config/cclearn
	ConfigFile string // Defaults to <ConfigDir>/config.toml
	EnvFile    string // Defaults to .env in the working directory
	Overrides  Overrides
}

type tomlConfig struct {
	LogsDir        string `toml:"logs_dir"`
	Hours          int    `toml:"hours"`
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	Grounding      *bool  `toml:"grounding"`
	AWSRegion      string `toml:"aws_region"`
	AWSProfile     string `toml:"aws_profile"`
	WebhookTimeout string `toml:"webhook_timeout"`
	LogLevel       string `toml:"log_level"`
}

// DefaultConfigDir returns ~/.config/cclearn
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "cclearn")
	}
	return filepath.Join(home, ".config", "cclearn")
}

// DefaultLogsDir returns ~/.claude/projects
func DefaultLogsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.claude/projects"
	}
	return filepath.Join(home, ".claude", "projects")
}

// Load builds the configuration. Precedence: flags > environment (including
// .env) > config.toml > defaults.
func Load(opts LoadOptions) (Config, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = filepath.Join(configDir, "config.toml")
	}
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}

	cfg := Config{
		LogsDir:   DefaultLogsDir(),
		Window:    DefaultHours * time.Hour,
		Provider:  DefaultProvider,
		Grounding: true,
		LogLevel:  "info",
		LogFile:   filepath.Join(configDir, "logs", "cclearn.log"),
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	if _, err := os.Stat(configFile); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(configFile, &tc); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", configFile, err)
		}
		if err := applyTOML(&cfg, tc); err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", configFile, err)
		}
	}

	promptPath := filepath.Join(configDir, "prompt.md")
	if data, err := os.ReadFile(promptPath); err == nil && strings.TrimSpace(string(data)) != "" {
		cfg.PromptTemplate = string(data)
		cfg.PromptPath = promptPath
	}

	applyEnv(&cfg)
	applyOverrides(&cfg, opts.Overrides)

	if cfg.Model == "" && cfg.Provider == ProviderGemini {
		cfg.Model = DefaultModel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func applyTOML(cfg *Config, tc tomlConfig) error {
	if tc.LogsDir != "" {
		cfg.LogsDir = expandHome(tc.LogsDir)
	}
	if tc.Hours > 0 {
		cfg.Window = time.Duration(tc.Hours) * time.Hour
	}
	if tc.Provider != "" {
		cfg.Provider = strings.ToLower(tc.Provider)
	}
	if tc.Model != "" {
		cfg.Model = tc.Model
	}
	if tc.Grounding != nil {
		cfg.Grounding = *tc.Grounding
	}
	if tc.AWSRegion != "" {
		cfg.AWSRegion = tc.AWSRegion
	}
	if tc.AWSProfile != "" {
		cfg.AWSProfile = tc.AWSProfile
	}
	if tc.WebhookTimeout != "" {
		d, err := time.ParseDuration(tc.WebhookTimeout)
		if err != nil {
			return fmt.Errorf("webhook_timeout: %w", err)
		}
		cfg.WebhookTimeout = d
	}
	if tc.LogLevel != "" {
		cfg.LogLevel = tc.LogLevel
	}
	return nil
}

// applyEnv reads secrets and provider selection. The transcript root is not
// read from the environment.
func applyEnv(cfg *Config) {
	cfg.GeminiAPIKey = getEnv("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.SlackWebhookURL = getEnv("SLACK_WEBHOOK_URL", cfg.SlackWebhookURL)
	cfg.Provider = strings.ToLower(getEnv("CCLEARN_PROVIDER", cfg.Provider))
	cfg.Model = getEnv("CCLEARN_MODEL", cfg.Model)
	cfg.Grounding = getEnvBool("CCLEARN_GROUNDING", cfg.Grounding)
	cfg.AWSRegion = getEnv("AWS_REGION", cfg.AWSRegion)
	cfg.AWSProfile = getEnv("AWS_PROFILE", cfg.AWSProfile)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
}

func applyOverrides(cfg *Config, o Overrides) {
	if o.LogsDir != "" {
		cfg.LogsDir = expandHome(o.LogsDir)
	}
	if o.Window > 0 {
		cfg.Window = o.Window
	}
	if o.Provider != "" {
		cfg.Provider = strings.ToLower(o.Provider)
	}
	if o.Model != "" {
		cfg.Model = o.Model
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}
}

// Validate checks the fields every command needs. Missing credentials are not
// checked here; the stage that needs them reports it.
func (c Config) Validate() error {
	if c.LogsDir == "" {
		return fmt.Errorf("logs directory cannot be empty")
	}
	if c.Window <= 0 {
		return fmt.Errorf("lookback window must be positive")
	}
	switch c.Provider {
	case ProviderGemini, ProviderBedrock:
	default:
		return fmt.Errorf("unknown provider %q (want %s or %s)", c.Provider, ProviderGemini, ProviderBedrock)
	}
	if c.WebhookTimeout < 0 {
		return fmt.Errorf("webhook timeout cannot be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return b
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
