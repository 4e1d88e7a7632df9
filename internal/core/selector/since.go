package selector

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// WindowSince converts a point in time such as "yesterday 9am", "last week" or
// "2026-10-01" into a lookback window ending at now.
func WindowSince(expr string, now time.Time) (time.Duration, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, fmt.Errorf("empty --since value")
	}

	since, ok := parseSince(expr, now)
	if !ok {
		return 0, fmt.Errorf("could not understand --since %q", expr)
	}
	if !since.Before(now) {
		return 0, fmt.Errorf("--since %q is not in the past", expr)
	}

	return now.Sub(since), nil
}

func parseSince(expr string, now time.Time) (time.Time, bool) {
	// Absolute formats first so "2026-10-01" isn't read as a time of day
	formats := []string{
		"2006-01-02",
		"2006-01-02 15:04",
		"2006-01-02T15:04:05",
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, expr, now.Location()); err == nil {
			return t, true
		}
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	result, err := w.Parse(expr, now)
	if err == nil && result != nil {
		return result.Time, true
	}

	return time.Time{}, false
}
