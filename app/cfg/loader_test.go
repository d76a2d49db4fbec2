package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestParseList(t *testing.T) {
	fallback := []string{"a", "b"}

	result := parseList("", fallback)
	if len(result) != 2 {
		t.Errorf("Expected fallback of 2 entries, got %d", len(result))
	}

	result = parseList("openai, anthropic ,llm", nil)
	if len(result) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(result))
	}
	if result[1] != "anthropic" {
		t.Errorf("Expected trimmed 'anthropic', got '%s'", result[1])
	}

	result = parseList(" , ,", fallback)
	if len(result) != 2 {
		t.Errorf("Expected fallback for whitespace-only input, got %d entries", len(result))
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		Port:              "8080",
		DBPath:            "./test.db",
		SourcesDir:        "./sources",
		Keywords:          []string{"openai"},
		BatchLimit:        3,
		SchedulerInterval: 30,
		CheckTimes:        []string{"08:00", "12:00"},
		PushoverToken:     "token",
		PushoverUser:      "user",
		WebhookURL:        "https://example.com/hook",
		DeliveryPause:     2,
		UserAgent:         "Test Agent",
		Timezone:          "UTC",
		Version:           "test-version",
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.BatchLimit != 3 {
		t.Errorf("Expected batch limit 3, got %d", cfg.BatchLimit)
	}
	if len(cfg.CheckTimes) != 2 {
		t.Errorf("Expected 2 check times, got %d", len(cfg.CheckTimes))
	}
	if cfg.WebhookURL != "https://example.com/hook" {
		t.Errorf("Expected webhook URL 'https://example.com/hook', got '%s'", cfg.WebhookURL)
	}
}

func TestDefaultKeywordsNotEmpty(t *testing.T) {
	if len(defaultKeywords) == 0 {
		t.Fatal("Default keyword set must not be empty")
	}

	found := false
	for _, kw := range defaultKeywords {
		if kw == "openai" {
			found = true
			break
		}
	}
	if !found {
		t.Error("Default keyword set should contain 'openai'")
	}
}
