// Package notify delivers alert notifications to an external webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kaynetech/RetailRx/internal/application/monitor"
	"github.com/kaynetech/RetailRx/pkg/logger"
)

var _ monitor.Notifier = (*WebhookNotifier)(nil)

// WebhookNotifier posts notifications as JSON to a configured endpoint.
// With no URL configured it logs and drops the message, so environments
// without a receiver still run the full pipeline.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
	log        *logger.Logger
}

// NewWebhookNotifier builds the notifier. url may be empty.
func NewWebhookNotifier(url string, log *logger.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url: url,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log,
	}
}

type webhookPayload struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Severity  string `json:"severity"`
	SentAt    string `json:"sent_at"`
}

// Send delivers one notification. Non-2xx responses are errors; the caller
// decides whether delivery failure matters.
func (n *WebhookNotifier) Send(ctx context.Context, msg monitor.Notification) error {
	if n.url == "" {
		n.log.Debug().
			Str("subject", msg.Subject).
			Str("severity", string(msg.Severity)).
			Msg("no webhook configured, notification dropped")
		return nil
	}

	body, err := json.Marshal(webhookPayload{
		Recipient: msg.Recipient,
		Subject:   msg.Subject,
		Message:   msg.Message,
		Severity:  string(msg.Severity),
		SentAt:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification webhook returned %d", resp.StatusCode)
	}
	return nil
}
