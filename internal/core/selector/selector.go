package selector

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/djherbis/times"
	"github.com/neilberkman/cclearn/pkg/ccsessions"
)

// DefaultWindow is how far back a run looks when no window is given
const DefaultWindow = 24 * time.Hour

// SessionExt is the extension of Claude Code transcript files
const SessionExt = ".jsonl"

// Selector finds session files created within a lookback window
type Selector struct {
	root      string
	window    time.Duration
	now       func() time.Time
	createdAt func(path string, info os.FileInfo) time.Time
}

// Option customises a Selector
type Option func(*Selector)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Selector) { s.now = now }
}

// WithCreatedAt replaces the creation time lookup, mainly for tests
func WithCreatedAt(fn func(path string, info os.FileInfo) time.Time) Option {
	return func(s *Selector) { s.createdAt = fn }
}

// New creates a selector rooted at dir. A non-positive window uses DefaultWindow.
func New(dir string, window time.Duration, opts ...Option) *Selector {
	if window <= 0 {
		window = DefaultWindow
	}
	s := &Selector{
		root:      dir,
		window:    window,
		now:       time.Now,
		createdAt: CreatedAt,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Window returns the lookback window
func (s *Selector) Window() time.Duration {
	return s.window
}

// Select returns the session files created at or after now-window, oldest first
func (s *Selector) Select() ([]ccsessions.SessionFile, error) {
	candidates, err := s.findSessionFiles()
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	cutoff := s.now().Add(-s.window)
	slog.Debug("filtering session files", "candidates", len(candidates), "cutoff", cutoff)

	var recent []ccsessions.SessionFile
	for _, f := range candidates {
		if !f.CreatedAt.Before(cutoff) {
			recent = append(recent, f)
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		if recent[i].CreatedAt.Equal(recent[j].CreatedAt) {
			return recent[i].Path < recent[j].Path
		}
		return recent[i].CreatedAt.Before(recent[j].CreatedAt)
	})

	return recent, nil
}

// findSessionFiles walks the root and collects every .jsonl file
func (s *Selector) findSessionFiles() ([]ccsessions.SessionFile, error) {
	if _, err := os.Stat(s.root); os.IsNotExist(err) {
		slog.Debug("session directory does not exist", "dir", s.root)
		return nil, nil
	}

	var files []ccsessions.SessionFile
	err := filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == s.root {
				return err
			}
			// Unreadable entries below the root don't stop the scan
			slog.Warn("skipping unreadable path", "path", path, "error", err)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path != s.root && strings.HasPrefix(info.Name(), ".") {
			// Hidden entries are not session files
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.IsDir() && filepath.Ext(path) == SessionExt {
			files = append(files, ccsessions.SessionFile{
				Path:      path,
				CreatedAt: s.createdAt(path, info),
				Size:      info.Size(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return files, nil
}

// CreatedAt returns the time a session file counts as created: the inode
// change time where the platform has one, so appending to an old session
// brings it back into the window. Birth time and then mtime are fallbacks.
func CreatedAt(path string, info os.FileInfo) time.Time {
	return creationTime(times.Get(info))
}

func creationTime(t times.Timespec) time.Time {
	if t.HasChangeTime() {
		return t.ChangeTime()
	}
	if t.HasBirthTime() {
		return t.BirthTime()
	}
	return t.ModTime()
}
