package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testNotification() Notification {
	return Notification{
		Title:      "AI News: TechCrunch AI",
		Message:    "OpenAI launches new model\n\ndetails...",
		SourceName: "TechCrunch AI",
		URL:        "https://example.com/1",
		Timestamp:  time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
	}
}

func TestWebhook_Enabled(t *testing.T) {
	if NewWebhook("").Enabled() {
		t.Errorf("Webhook without URL should be disabled")
	}
	if NewWebhook("   ").Enabled() {
		t.Errorf("Webhook with blank URL should be disabled")
	}
	if !NewWebhook("https://example.com/hook").Enabled() {
		t.Errorf("Webhook with URL should be enabled")
	}
}

func TestWebhook_Send_GenericJSON(t *testing.T) {
	var gotContentType string
	var gotPayload map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotPayload)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	webhook := NewWebhook(server.URL)
	if err := webhook.Send(context.Background(), testNotification()); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if gotContentType != "application/json" {
		t.Errorf("Expected JSON content type, got '%s'", gotContentType)
	}
	if gotPayload["title"] != "AI News: TechCrunch AI" {
		t.Errorf("Expected title in payload, got '%s'", gotPayload["title"])
	}
	if gotPayload["source"] != "TechCrunch AI" {
		t.Errorf("Expected source in payload, got '%s'", gotPayload["source"])
	}
	if gotPayload["url"] != "https://example.com/1" {
		t.Errorf("Expected url in payload, got '%s'", gotPayload["url"])
	}
	if gotPayload["timestamp"] != "2024-01-02T12:00:00Z" {
		t.Errorf("Expected RFC3339 timestamp, got '%s'", gotPayload["timestamp"])
	}
}

func TestWebhook_IFTTTPayloadShape(t *testing.T) {
	webhook := NewWebhook("https://maker.ifttt.com/trigger/news/with/key/abc")

	req, err := webhook.iftttRequest(context.Background(), testNotification())
	if err != nil {
		t.Fatalf("iftttRequest failed: %v", err)
	}

	body, _ := io.ReadAll(req.Body)
	var payload map[string]string
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}

	if payload["value1"] != "AI News: TechCrunch AI" {
		t.Errorf("Expected value1 title, got '%s'", payload["value1"])
	}
	if payload["value3"] != "https://example.com/1" {
		t.Errorf("Expected value3 URL, got '%s'", payload["value3"])
	}
}

func TestWebhook_NtfyPayloadShape(t *testing.T) {
	webhook := NewWebhook("https://ntfy.sh/my-topic")

	req, err := webhook.ntfyRequest(context.Background(), testNotification())
	if err != nil {
		t.Fatalf("ntfyRequest failed: %v", err)
	}

	if req.Header.Get("Title") != "AI News: TechCrunch AI" {
		t.Errorf("Expected Title header, got '%s'", req.Header.Get("Title"))
	}
	if req.Header.Get("Content-Type") != "text/plain" {
		t.Errorf("Expected plain-text content type, got '%s'", req.Header.Get("Content-Type"))
	}

	body, _ := io.ReadAll(req.Body)
	if string(body) != "OpenAI launches new model\n\ndetails...\n\nRead more: https://example.com/1" {
		t.Errorf("Unexpected ntfy body: %s", string(body))
	}
}

func TestWebhook_Send_AcceptedStatusCodes(t *testing.T) {
	for _, status := range []int{200, 201, 202, 204} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		webhook := NewWebhook(server.URL)
		if err := webhook.Send(context.Background(), testNotification()); err != nil {
			t.Errorf("Status %d should be a success, got error: %v", status, err)
		}
		server.Close()
	}
}

func TestWebhook_Send_RejectedStatusCodes(t *testing.T) {
	for _, status := range []int{400, 401, 404, 500} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		webhook := NewWebhook(server.URL)
		if err := webhook.Send(context.Background(), testNotification()); err == nil {
			t.Errorf("Status %d should be a failure", status)
		}
		server.Close()
	}
}
