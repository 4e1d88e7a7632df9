package ccsessions

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Role is the normalised speaker of a transcript record
type Role string

const (
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
	RoleOther     Role = "other"
)

// Dialogue line prefixes
const (
	HumanPrefix     = "ME: "
	AssistantPrefix = "Mentor: "
)

// Record is one transcript line reduced to what the dialogue needs
type Record struct {
	Role Role
	Text string // Empty when the line carries no usable text
}

// ParseStats counts what happened to the lines of one or more files
type ParseStats struct {
	Lines   int // Non-blank lines read
	Emitted int // Dialogue lines produced
	Skipped int // Lines that were not valid JSON objects
}

// Add accumulates another file's stats
func (s *ParseStats) Add(other ParseStats) {
	s.Lines += other.Lines
	s.Emitted += other.Emitted
	s.Skipped += other.Skipped
}

// rawEntry represents a raw JSONL line. Fields are optional and loosely typed,
// so message content stays raw until we know its shape.
type rawEntry struct {
	Type    string      `json:"type"`
	Message *rawMessage `json:"message,omitempty"`
}

type rawMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// DecodeLine decodes a single JSONL line. ok is false when the line is not a
// JSON object; such lines are skipped by callers.
func DecodeLine(line []byte) (rec Record, ok bool) {
	// json.Unmarshal accepts null into a struct without error
	if bytes.Equal(bytes.TrimSpace(line), []byte("null")) {
		return Record{}, false
	}

	var raw rawEntry
	if err := json.Unmarshal(line, &raw); err != nil {
		return Record{}, false
	}

	roleName := raw.Type
	if roleName == "" && raw.Message != nil {
		roleName = raw.Message.Role
	}

	rec.Role = normaliseRole(roleName)
	if raw.Message != nil {
		rec.Text = extractText(raw.Message.Content)
	}
	return rec, true
}

// Render returns the dialogue line for a record, or false if it contributes nothing
func (r Record) Render() (string, bool) {
	if r.Text == "" {
		return "", false
	}
	switch r.Role {
	case RoleHuman:
		return HumanPrefix + r.Text, true
	case RoleAssistant:
		return AssistantPrefix + r.Text, true
	default:
		return "", false
	}
}

func normaliseRole(name string) Role {
	switch name {
	case "user", "human":
		return RoleHuman
	case "assistant":
		return RoleAssistant
	default:
		return RoleOther
	}
}

// extractText handles both content shapes: a plain string (user prompts) and an
// array of typed blocks (assistant replies, tool results).
func extractText(content json.RawMessage) string {
	content = bytes.TrimSpace(content)
	if len(content) == 0 {
		return ""
	}

	switch content[0] {
	case '"':
		var s string
		if err := json.Unmarshal(content, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)

	case '[':
		// Decode element by element so one odd block does not hide the rest
		var items []json.RawMessage
		if err := json.Unmarshal(content, &items); err != nil {
			return ""
		}
		var texts []string
		for _, item := range items {
			var block contentBlock
			if err := json.Unmarshal(item, &block); err != nil {
				continue
			}
			if block.Type != "text" {
				continue
			}
			if text := strings.TrimSpace(block.Text); text != "" {
				texts = append(texts, text)
			}
		}
		return strings.Join(texts, "\n")
	}

	return ""
}

// ParseConversation renders one session file as ME:/Mentor: dialogue.
// Malformed lines are skipped and counted; a file without dialogue yields "".
func ParseConversation(path string) (conversation string, stats ParseStats, err error) {
	file, ferr := os.Open(path)
	if ferr != nil {
		return "", stats, fmt.Errorf("failed to open file: %w", ferr)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	// Lines are read whole; pasted images make single lines of many MB
	reader := bufio.NewReaderSize(file, 64*1024)

	var lines []string
	for {
		raw, rerr := reader.ReadBytes('\n')
		if rerr != nil && rerr != io.EOF {
			return "", stats, fmt.Errorf("error reading file: %w", rerr)
		}

		if line := bytes.TrimSpace(raw); len(line) > 0 {
			stats.Lines++
			if rec, ok := DecodeLine(line); !ok {
				stats.Skipped++
			} else if text, ok := rec.Render(); ok {
				lines = append(lines, text)
				stats.Emitted++
			}
		}

		if rerr == io.EOF {
			break
		}
	}

	return strings.Join(lines, "\n"), stats, nil
}
