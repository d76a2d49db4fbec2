package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	pushoverEndpoint     = "https://api.pushover.net/1/messages.json"
	pushoverTitleLimit   = 250
	pushoverMessageLimit = 1024
)

// Pushover sends push notifications via the Pushover message API.
type Pushover struct {
	token    string
	user     string
	endpoint string
	client   *http.Client
}

var _ Transport = (*Pushover)(nil)

func NewPushover(token, user string) *Pushover {
	return &Pushover{
		token:    token,
		user:     user,
		endpoint: pushoverEndpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *Pushover) Name() string {
	return "pushover"
}

func (p *Pushover) Enabled() bool {
	return p.token != "" && p.user != ""
}

func (p *Pushover) Send(ctx context.Context, notification Notification) error {
	if !p.Enabled() {
		return fmt.Errorf("pushover transport not configured")
	}

	form := url.Values{}
	form.Set("token", p.token)
	form.Set("user", p.user)
	form.Set("title", truncate(notification.Title, pushoverTitleLimit))
	form.Set("message", truncate(notification.Message, pushoverMessageLimit))
	form.Set("priority", "0")
	form.Set("sound", "pushover")

	if notification.URL != "" {
		form.Set("url", notification.URL)
		form.Set("url_title", "Read Article")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("pushover error %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}
