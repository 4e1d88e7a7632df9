package cli

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/neilberkman/cclearn/internal/core/pipeline"
	"github.com/neilberkman/cclearn/pkg/ccsessions"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List the session files the next run would summarize",
	Long: `List the session files created in the lookback window, oldest first.

Nothing is parsed or sent; use this to check the window before a run.

Examples:
  cclearn sessions
  cclearn sessions --hours 48
  cclearn sessions --since yesterday`,
	Args: cobra.NoArgs,
	RunE: runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	cfg, closeLog, err := loadConfig(cmd.ErrOrStderr(), "", "")
	if err != nil {
		return err
	}
	defer closeLog()

	w := cmd.OutOrStdout()

	files, err := newSelector(cfg).Select()
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(files) == 0 {
		fmt.Fprintf(w, "No session files in %s from the last %s\n", cfg.LogsDir, pipeline.FormatWindow(cfg.Window))
		return nil
	}

	var totalSize int64
	fmt.Fprintf(w, "%d session file(s) from the last %s:\n\n", len(files), pipeline.FormatWindow(cfg.Window))
	for i, f := range files {
		fmt.Fprintf(w, "[%d] %s\n", i+1, filepath.Base(f.Path))
		fmt.Fprintf(w, "    Project: %s\n", ccsessions.ProjectPath(f.Path))
		fmt.Fprintf(w, "    Created: %s (%s)\n", f.CreatedAt.Format(ccsessions.SessionTimeLayout), humanize.Time(f.CreatedAt))
		fmt.Fprintf(w, "    Size:    %s\n", humanize.Bytes(uint64(f.Size)))
		fmt.Fprintln(w)
		totalSize += f.Size
	}
	fmt.Fprintf(w, "Total: %s\n", humanize.Bytes(uint64(totalSize)))

	return nil
}
