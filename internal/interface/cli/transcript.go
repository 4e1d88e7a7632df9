package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/neilberkman/cclearn/pkg/ccsessions"
	"github.com/spf13/cobra"
)

var transcriptOutput string

var transcriptCmd = &cobra.Command{
	Use:   "transcript",
	Short: "Print the combined transcript that would be summarized",
	Long: `Render the ME:/Mentor: transcript of every session in the lookback window.

By default the transcript is printed to stdout. Use --output to write a file.

Examples:
  cclearn transcript
  cclearn transcript --hours 6 -o today.txt`,
	Args: cobra.NoArgs,
	RunE: runTranscript,
}

func init() {
	rootCmd.AddCommand(transcriptCmd)
	transcriptCmd.Flags().StringVarP(&transcriptOutput, "output", "o", "", "Write the transcript to this file")
}

func runTranscript(cmd *cobra.Command, args []string) error {
	cfg, closeLog, err := loadConfig(cmd.ErrOrStderr(), "", "")
	if err != nil {
		return err
	}
	defer closeLog()

	files, err := newSelector(cfg).Select()
	if err != nil {
		return fmt.Errorf("failed to select session files: %w", err)
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No claude session files found in the specified time range")
		return nil
	}

	transcript, stats := ccsessions.CombineConversations(files)

	if transcriptOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), transcript)
		return nil
	}

	outputPath := transcriptOutput
	if !filepath.IsAbs(outputPath) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		outputPath = filepath.Join(cwd, outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(transcript+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d dialogue lines from %d session(s) (%s) to: %s\n",
		stats.Emitted, len(files), humanize.Bytes(uint64(len(transcript))), outputPath)
	return nil
}
