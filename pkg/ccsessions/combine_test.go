package ccsessions

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSession(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCombineConversations(t *testing.T) {
	dir := t.TempDir()
	first := writeSession(t, dir, "first.jsonl", `{"type":"user","message":{"content":"hi"}}`+"\n")
	empty := writeSession(t, dir, "empty.jsonl", `{"type":"system","message":{"content":"noise"}}`+"\n")
	second := writeSession(t, dir, "second.jsonl",
		`{"type":"assistant","message":{"content":[{"type":"text","text":"hello"}]}}`+"\n")

	t1 := time.Date(2026, 10, 17, 9, 30, 0, 0, time.Local)
	t2 := time.Date(2026, 10, 17, 10, 0, 0, 0, time.Local)
	t3 := time.Date(2026, 10, 17, 11, 15, 5, 0, time.Local)

	got, stats := CombineConversations([]SessionFile{
		{Path: first, CreatedAt: t1},
		{Path: empty, CreatedAt: t2},
		{Path: second, CreatedAt: t3},
	})

	want := "\n--- Session: first.jsonl (2026-10-17 09:30:00) ---\n" +
		"\n" +
		"ME: hi" +
		"\n" +
		"\n--- Session: second.jsonl (2026-10-17 11:15:05) ---\n" +
		"\n" +
		"Mentor: hello"
	if got != want {
		t.Errorf("CombineConversations() =\n%q\nwant\n%q", got, want)
	}

	if stats.Emitted != 2 {
		t.Errorf("Emitted = %d, want 2", stats.Emitted)
	}
}

func TestCombineConversations_AllEmpty(t *testing.T) {
	dir := t.TempDir()
	empty := writeSession(t, dir, "empty.jsonl", "not json\n")

	got, stats := CombineConversations([]SessionFile{{Path: empty, CreatedAt: time.Now()}})
	if got != "" {
		t.Errorf("CombineConversations() = %q, want empty", got)
	}
	if stats.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", stats.Skipped)
	}
}

func TestCombineConversations_UnreadableFileSkipped(t *testing.T) {
	dir := t.TempDir()
	ok := writeSession(t, dir, "ok.jsonl", `{"type":"user","message":{"content":"still here"}}`+"\n")

	got, _ := CombineConversations([]SessionFile{
		{Path: filepath.Join(dir, "missing.jsonl"), CreatedAt: time.Now()},
		{Path: ok, CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)},
	})

	want := "\n--- Session: ok.jsonl (2026-01-02 03:04:05) ---\n\nME: still here"
	if got != want {
		t.Errorf("CombineConversations() = %q, want %q", got, want)
	}
}

func TestProjectPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/home/me/.claude/projects/-Users-neil-xuku-invoice/abc.jsonl", "/Users/neil/xuku/invoice"},
		{"/tmp/sessions/plain/abc.jsonl", "plain"},
	}
	for _, tt := range tests {
		if got := ProjectPath(tt.path); got != tt.want {
			t.Errorf("ProjectPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
