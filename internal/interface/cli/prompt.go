package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/neilberkman/cclearn/internal/core/llm"
	"github.com/neilberkman/cclearn/internal/core/pipeline"
	"github.com/neilberkman/cclearn/pkg/ccsessions"
	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Show the prompt that would be sent to the model",
	Args:  cobra.NoArgs,
	RunE:  runPrompt,
}

func init() {
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	cfg, closeLog, err := loadConfig(cmd.ErrOrStderr(), "", "")
	if err != nil {
		return err
	}
	defer closeLog()

	files, err := newSelector(cfg).Select()
	if err != nil {
		return fmt.Errorf("failed to select session files: %w", err)
	}
	transcript, stats := ccsessions.CombineConversations(files)

	prompt, err := llm.RenderPrompt(cfg.PromptTemplate, transcript)
	if err != nil {
		return err
	}

	templateSource := "built-in"
	if cfg.PromptPath != "" {
		templateSource = cfg.PromptPath
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "=== RUN INFO ===")
	fmt.Fprintf(w, "Sessions dir: %s\n", cfg.LogsDir)
	fmt.Fprintf(w, "Window:       last %s\n", pipeline.FormatWindow(cfg.Window))
	fmt.Fprintf(w, "Files:        %d\n", len(files))
	fmt.Fprintf(w, "Dialogue:     %d lines (%d malformed lines skipped)\n", stats.Emitted, stats.Skipped)
	fmt.Fprintf(w, "Provider:     %s %s\n", cfg.Provider, cfg.Model)
	fmt.Fprintf(w, "Grounding:    %t\n", cfg.Grounding)
	fmt.Fprintf(w, "Template:     %s\n", templateSource)
	fmt.Fprintf(w, "Prompt size:  %s\n", humanize.Bytes(uint64(len(prompt))))
	fmt.Fprintln(w)
	if transcript == "" {
		fmt.Fprintf(w, "No transcript; a run would send %q without calling the model.\n", llm.NoDataSummary)
		return nil
	}
	fmt.Fprintln(w, "=== PROMPT ===")
	fmt.Fprintln(w, prompt)

	return nil
}
