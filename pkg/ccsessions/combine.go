package ccsessions

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
)

// SessionTimeLayout formats the creation time in session headers
const SessionTimeLayout = "2006-01-02 15:04:05"

// SessionFile is a transcript file picked for a run
type SessionFile struct {
	Path      string
	CreatedAt time.Time
	Size      int64
}

// SessionHeader returns the separator block that precedes a session's dialogue
func SessionHeader(f SessionFile) string {
	return fmt.Sprintf("\n--- Session: %s (%s) ---\n", filepath.Base(f.Path), f.CreatedAt.Format(SessionTimeLayout))
}

// CombineConversations renders files in the order given, each non-empty one
// preceded by its header. Files without dialogue get no header. Files that
// cannot be read are logged and skipped.
func CombineConversations(files []SessionFile) (string, ParseStats) {
	var parts []string
	var total ParseStats

	for _, f := range files {
		conversation, stats, err := ParseConversation(f.Path)
		if err != nil {
			slog.Warn("skipping unreadable session file", "path", f.Path, "error", err)
			continue
		}
		total.Add(stats)
		if stats.Skipped > 0 {
			slog.Debug("skipped malformed lines", "path", f.Path, "skipped", stats.Skipped)
		}

		if conversation == "" {
			continue
		}
		parts = append(parts, SessionHeader(f), conversation)
	}

	return strings.Join(parts, "\n"), total
}

// ProjectPath decodes the project directory Claude Code encodes in the parent
// folder name: ~/.claude/projects/-Users-neil-app/x.jsonl gives /Users/neil/app.
// Dashes that were part of the real path can't be told apart.
func ProjectPath(filePath string) string {
	base := filepath.Base(filepath.Dir(filePath))
	if len(base) > 1 && base[0] == '-' {
		return "/" + strings.ReplaceAll(base[1:], "-", "/")
	}
	return base
}
