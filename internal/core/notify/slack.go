// Package notify delivers the digest to Slack through an incoming webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/neilberkman/cclearn/internal/core/console"
)

// maxErrorBody caps how much of a failed response is echoed back
const maxErrorBody = 2048

type slackMessage struct {
	Text string `json:"text"`
}

// Slack posts messages to a Slack incoming webhook
type Slack struct {
	webhookURL string
	client     *http.Client
	out        *console.Console
}

// NewSlack creates a notifier. An empty webhookURL is allowed; Send then
// reports the missing configuration. A zero timeout means no client timeout.
func NewSlack(webhookURL string, timeout time.Duration, out *console.Console) *Slack {
	return &Slack{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: timeout},
		out:        out,
	}
}

// Send posts the summary and reports whether Slack accepted it. Failures are
// printed, never returned.
func (s *Slack) Send(ctx context.Context, summary string) bool {
	if s.webhookURL == "" {
		s.out.Error("SLACK_WEBHOOK_URL is not set")
		return false
	}

	if summary == "" {
		s.out.Error("No summary to send")
		return false
	}

	payload, err := json.Marshal(slackMessage{Text: summary})
	if err != nil {
		s.out.Error("Failed to send to Slack: %v", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		s.out.Error("Failed to send to Slack: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Debug("webhook request failed", "error", err)
		s.out.Error("Failed to send to Slack: %v", err)
		return false
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		slog.Debug("webhook rejected message", "status", resp.StatusCode)
		s.out.Error("Slack returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		return false
	}

	s.out.Success("Successfully sent to Slack")
	return true
}

// String describes the destination without leaking the webhook secret
func (s *Slack) String() string {
	if s.webhookURL == "" {
		return "slack (not configured)"
	}
	return fmt.Sprintf("slack (%s)", redactURL(s.webhookURL))
}

// redactURL keeps the scheme and host of a webhook URL
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "invalid URL"
	}
	return u.Scheme + "://" + u.Host + "/…"
}
