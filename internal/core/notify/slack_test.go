package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/neilberkman/cclearn/internal/core/console"
)

func TestSlackSend_Success(t *testing.T) {
	var got slackMessage
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		contentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("body is not JSON: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	var out bytes.Buffer
	s := NewSlack(srv.URL, 0, console.New(&out))

	if !s.Send(context.Background(), "*Great session*\n- learned things") {
		t.Fatalf("Send() = false, output %q", out.String())
	}
	if got.Text != "*Great session*\n- learned things" {
		t.Errorf("text = %q", got.Text)
	}
	if contentType != "application/json" {
		t.Errorf("Content-Type = %q", contentType)
	}
	if !strings.Contains(out.String(), "✓ Successfully sent to Slack") {
		t.Errorf("output = %q", out.String())
	}
}

func TestSlackSend_Failures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		configured  bool
		summary     string
		wantCalls   int32
		wantMessage string
	}{
		{
			name:        "missing webhook",
			configured:  false,
			summary:     "digest",
			wantCalls:   0,
			wantMessage: "ERROR: SLACK_WEBHOOK_URL is not set",
		},
		{
			name:        "empty summary",
			configured:  true,
			summary:     "",
			wantCalls:   0,
			wantMessage: "ERROR: No summary to send",
		},
		{
			name:        "server error",
			status:      http.StatusInternalServerError,
			configured:  true,
			summary:     "digest",
			wantCalls:   1,
			wantMessage: "ERROR: Slack returned status 500: invalid_payload",
		},
		{
			name:        "created is not success",
			status:      http.StatusCreated,
			configured:  true,
			summary:     "digest",
			wantCalls:   1,
			wantMessage: "ERROR: Slack returned status 201",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("invalid_payload"))
			}))
			defer srv.Close()

			url := ""
			if tt.configured {
				url = srv.URL
			}

			var out bytes.Buffer
			s := NewSlack(url, 0, console.New(&out))

			if s.Send(context.Background(), tt.summary) {
				t.Error("Send() = true, want false")
			}
			if calls.Load() != tt.wantCalls {
				t.Errorf("requests = %d, want %d", calls.Load(), tt.wantCalls)
			}
			if !strings.Contains(out.String(), tt.wantMessage) {
				t.Errorf("output = %q, want %q", out.String(), tt.wantMessage)
			}
		})
	}
}

func TestSlackSend_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	var out bytes.Buffer
	s := NewSlack(url, 0, console.New(&out))

	if s.Send(context.Background(), "digest") {
		t.Error("Send() = true, want false")
	}
	if !strings.Contains(out.String(), "ERROR: Failed to send to Slack:") {
		t.Errorf("output = %q", out.String())
	}
}

func TestSlackString_RedactsPath(t *testing.T) {
	s := NewSlack("https://hooks.slack.com/services/T000/B000/secret", 0, console.New(io.Discard))
	if got := s.String(); strings.Contains(got, "secret") || !strings.Contains(got, "hooks.slack.com") {
		t.Errorf("String() = %q", got)
	}
	if got := NewSlack("", 0, console.New(io.Discard)).String(); got != "slack (not configured)" {
		t.Errorf("String() = %q", got)
	}
}
