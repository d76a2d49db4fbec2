package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Webhook posts notifications to a configured endpoint, shaping the payload
// for the destination's convention: IFTTT maker webhooks and ntfy topics get
// their native formats, everything else gets a generic JSON body.
type Webhook struct {
	url    string
	client *http.Client
}

var _ Transport = (*Webhook)(nil)

func NewWebhook(webhookURL string) *Webhook {
	return &Webhook{
		url:    strings.TrimSpace(webhookURL),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (w *Webhook) Name() string {
	return "webhook"
}

func (w *Webhook) Enabled() bool {
	return w.url != ""
}

func (w *Webhook) Send(ctx context.Context, notification Notification) error {
	if !w.Enabled() {
		return fmt.Errorf("webhook transport not configured")
	}

	var req *http.Request
	var err error

	switch {
	case strings.Contains(w.url, "ifttt.com"):
		req, err = w.iftttRequest(ctx, notification)
	case strings.Contains(w.url, "ntfy.sh"):
		req, err = w.ntfyRequest(ctx, notification)
	default:
		req, err = w.genericRequest(ctx, notification)
	}
	if err != nil {
		return err
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook error %d: %s", resp.StatusCode, string(body))
	}
}

// iftttRequest shapes the IFTTT maker-webhook payload: three positional
// values for title, message and click-through URL.
func (w *Webhook) iftttRequest(ctx context.Context, notification Notification) (*http.Request, error) {
	payload := map[string]string{
		"value1": notification.Title,
		"value2": notification.Message,
		"value3": notification.URL,
	}

	return w.jsonRequest(ctx, payload)
}

// ntfyRequest sends a plain-text body with metadata carried in headers, per
// the ntfy publishing convention.
func (w *Webhook) ntfyRequest(ctx context.Context, notification Notification) (*http.Request, error) {
	body := notification.Message + "\n\nRead more: " + notification.URL

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	req.Header.Set("Title", notification.Title)
	req.Header.Set("Tags", "robot,news")
	req.Header.Set("Priority", "3")
	req.Header.Set("Content-Type", "text/plain")

	return req, nil
}

func (w *Webhook) genericRequest(ctx context.Context, notification Notification) (*http.Request, error) {
	payload := map[string]string{
		"title":     notification.Title,
		"message":   notification.Message,
		"url":       notification.URL,
		"source":    notification.SourceName,
		"timestamp": notification.Timestamp.Format(time.RFC3339),
	}

	return w.jsonRequest(ctx, payload)
}

func (w *Webhook) jsonRequest(ctx context.Context, payload map[string]string) (*http.Request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
