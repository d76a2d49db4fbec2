package notify

import (
	"context"
	"fmt"
	"testing"
	"time"

	"newswatch/app/news"
)

type fakeTransport struct {
	name    string
	enabled bool
	fail    bool
	sent    []Notification
}

func (f *fakeTransport) Name() string  { return f.name }
func (f *fakeTransport) Enabled() bool { return f.enabled }

func (f *fakeTransport) Send(ctx context.Context, notification Notification) error {
	if f.fail {
		return fmt.Errorf("simulated transport failure")
	}
	f.sent = append(f.sent, notification)
	return nil
}

func testItem() news.Item {
	return news.Item{
		Fingerprint: "abc123",
		Title:       "OpenAI launches new model",
		URL:         "https://example.com/1",
		Summary:     "details...",
		SourceName:  "TechCrunch AI",
	}
}

func TestDeliverer_Run_AllSucceed(t *testing.T) {
	a := &fakeTransport{name: "pushover", enabled: true}
	b := &fakeTransport{name: "webhook", enabled: true}
	deliverer := NewDeliverer([]Transport{a, b}, 0)

	outcomes := deliverer.Run(context.Background(), testItem())

	if len(outcomes) != 2 {
		t.Fatalf("Expected 2 outcomes, got %d", len(outcomes))
	}
	for _, outcome := range outcomes {
		if outcome.Status != StatusSuccess {
			t.Errorf("Transport %s: expected success, got %s", outcome.Transport, outcome.Status)
		}
	}
	if !Delivered(outcomes) {
		t.Errorf("Item with successful transports should count as delivered")
	}
}

func TestDeliverer_Run_PartialFailure(t *testing.T) {
	failing := &fakeTransport{name: "pushover", enabled: true, fail: true}
	working := &fakeTransport{name: "webhook", enabled: true}
	deliverer := NewDeliverer([]Transport{failing, working}, 0)

	outcomes := deliverer.Run(context.Background(), testItem())

	if outcomes[0].Status != StatusFailed {
		t.Errorf("Failing transport should report failed, got %s", outcomes[0].Status)
	}
	if outcomes[0].Err == nil {
		t.Errorf("Failed outcome should carry the error")
	}
	if outcomes[1].Status != StatusSuccess {
		t.Errorf("Working transport should report success, got %s", outcomes[1].Status)
	}
	if !Delivered(outcomes) {
		t.Errorf("Partial failure should still count as delivered")
	}
	if len(working.sent) != 1 {
		t.Errorf("Failure of one transport must not abort remaining attempts")
	}
}

func TestDeliverer_Run_SkippedNotConfigured(t *testing.T) {
	unconfigured := &fakeTransport{name: "pushover", enabled: false}
	failing := &fakeTransport{name: "webhook", enabled: true, fail: true}
	deliverer := NewDeliverer([]Transport{unconfigured, failing}, 0)

	outcomes := deliverer.Run(context.Background(), testItem())

	if outcomes[0].Status != StatusSkipped {
		t.Errorf("Unconfigured transport should be skipped, got %s", outcomes[0].Status)
	}
	if Delivered(outcomes) {
		t.Errorf("Skipped plus failed must not count as delivered")
	}
}

func TestDeliverer_Run_NoTransports(t *testing.T) {
	deliverer := NewDeliverer(nil, 0)

	outcomes := deliverer.Run(context.Background(), testItem())
	if len(outcomes) != 0 {
		t.Errorf("Expected no outcomes without transports")
	}
	if Delivered(outcomes) {
		t.Errorf("No transports must not count as delivered")
	}
}

func TestDeliverer_Pause_ContextCancelled(t *testing.T) {
	deliverer := NewDeliverer(nil, 10*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	deliverer.Pause(ctx)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Pause should return promptly on cancelled context, took %v", elapsed)
	}
}

func TestDeliverer_HasEnabledTransport(t *testing.T) {
	deliverer := NewDeliverer([]Transport{
		&fakeTransport{name: "pushover", enabled: false},
		&fakeTransport{name: "webhook", enabled: true},
	}, 0)
	if !deliverer.HasEnabledTransport() {
		t.Errorf("Expected an enabled transport to be reported")
	}

	deliverer = NewDeliverer([]Transport{&fakeTransport{name: "pushover"}}, 0)
	if deliverer.HasEnabledTransport() {
		t.Errorf("Expected no enabled transports")
	}
}

func TestNewItemNotification(t *testing.T) {
	notification := NewItemNotification(testItem())

	if notification.Title != "AI News: TechCrunch AI" {
		t.Errorf("Expected source-based title, got '%s'", notification.Title)
	}
	if notification.Message != "OpenAI launches new model\n\ndetails..." {
		t.Errorf("Unexpected message: %s", notification.Message)
	}
	if notification.URL != "https://example.com/1" {
		t.Errorf("Expected click-through URL preserved")
	}
}
