// Package pipeline runs a digest: select recent sessions, render the
// transcript, summarize it and deliver the result. Stages run strictly one
// after another.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/neilberkman/cclearn/internal/core/console"
	"github.com/neilberkman/cclearn/pkg/ccsessions"
)

// FileSelector finds the session files for a run
type FileSelector interface {
	Select() ([]ccsessions.SessionFile, error)
	Window() time.Duration
}

// Summarizer turns the combined transcript into a digest
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
	ProviderName() string
}

// Notifier delivers the digest and reports whether it was accepted
type Notifier interface {
	Send(ctx context.Context, summary string) bool
}

// Options changes what happens with the summary
type Options struct {
	DryRun bool // Print the summary instead of sending it
	Copy   bool // Also copy the summary to the clipboard
}

// Result describes a finished run
type Result struct {
	Files           int
	TranscriptChars int
	SummaryChars    int
	Summary         string
	Delivered       bool
	Stats           ccsessions.ParseStats
}

// Pipeline wires the stages together
type Pipeline struct {
	selector   FileSelector
	summarizer Summarizer
	notifier   Notifier
	out        *console.Console
	opts       Options
	copyText   func(string) error
}

// New creates a pipeline
func New(selector FileSelector, summarizer Summarizer, notifier Notifier, out *console.Console, opts Options) *Pipeline {
	return &Pipeline{
		selector:   selector,
		summarizer: summarizer,
		notifier:   notifier,
		out:        out,
		opts:       opts,
		copyText:   clipboard.WriteAll,
	}
}

// Run executes one digest. Finding no files is a successful no-op. A
// summarization error ends the run and is returned; a failed delivery is only
// reported.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	var result Result

	p.out.Stage("Looking for session files from the last %s...", FormatWindow(p.selector.Window()))

	files, err := p.selector.Select()
	if err != nil {
		return result, fmt.Errorf("failed to select session files: %w", err)
	}
	if len(files) == 0 {
		p.out.Info("No claude session files found in the specified time range")
		return result, nil
	}
	result.Files = len(files)
	p.out.Info("Found %d session file(s) to process", len(files))

	p.out.Stage("Parsing conversations...")
	transcript, stats := ccsessions.CombineConversations(files)
	result.TranscriptChars = len([]rune(transcript))
	result.Stats = stats
	p.out.Info("Parsed %s characters of conversation text", humanize.Comma(int64(result.TranscriptChars)))
	slog.Debug("parsed sessions", "files", len(files), "lines", stats.Lines, "emitted", stats.Emitted, "skipped", stats.Skipped)

	p.out.Stage("Generating summary with %s (this may take a while)...", p.summarizer.ProviderName())
	summary, err := p.summarizer.Summarize(ctx, transcript)
	if err != nil {
		return result, err
	}
	result.Summary = summary
	result.SummaryChars = len([]rune(summary))
	p.out.Info("Summary generated (%s characters)", humanize.Comma(int64(result.SummaryChars)))

	if p.opts.Copy {
		if err := p.copyText(summary); err != nil {
			p.out.Warn("could not copy summary to clipboard: %v", err)
		} else {
			p.out.Success("Summary copied to clipboard")
		}
	}

	if p.opts.DryRun {
		p.out.Stage("Dry run, not sending to Slack:")
		p.out.Info("%s", summary)
		return result, nil
	}

	p.out.Stage("Sending to Slack...")
	result.Delivered = p.notifier.Send(ctx, summary)
	p.out.Info("Done!")

	return result, nil
}

// FormatWindow renders a lookback window for progress messages, e.g.
// "24 hours" or "15 hours 23 minutes"
func FormatWindow(d time.Duration) string {
	d = d.Round(time.Minute)
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)

	switch {
	case hours == 0:
		return plural(minutes, "minute")
	case minutes == 0:
		return plural(hours, "hour")
	default:
		return plural(hours, "hour") + " " + plural(minutes, "minute")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
