package llm

import (
	"strings"
	"testing"
)

func TestRenderPrompt_DefaultTemplate(t *testing.T) {
	prompt, err := RenderPrompt("", "ME: hi\nMentor: hello")
	if err != nil {
		t.Fatalf("RenderPrompt() error = %v", err)
	}

	sections := []string{
		"### TECHNICAL CONCEPTS LEARNED",
		"### PROBLEM-SOLVING & DEBUGGING INSIGHTS",
		"### PITFALLS, MISTAKES & TRADEOFFS",
		"### CODE QUALITY & BEST PRACTICES",
		"### CLAUDE CODE PROMPTING EFFECTIVENESS",
		"### ACTION ITEMS FOR THE JUNIOR",
		"`/compact`",
	}
	for _, s := range sections {
		if !strings.Contains(prompt, s) {
			t.Errorf("prompt missing %q", s)
		}
	}

	if !strings.HasSuffix(prompt, "## TRANSCRIPT TO ANALYZE:\nME: hi\nMentor: hello\n") {
		t.Errorf("transcript should close the prompt, got tail %q", prompt[len(prompt)-80:])
	}
}

func TestRenderPrompt_NoEscaping(t *testing.T) {
	transcript := `ME: what does <div class="x"> & 'y' mean?`
	prompt, err := RenderPrompt("", transcript)
	if err != nil {
		t.Fatalf("RenderPrompt() error = %v", err)
	}
	if !strings.Contains(prompt, transcript) {
		t.Error("transcript must not be HTML-escaped")
	}
}
