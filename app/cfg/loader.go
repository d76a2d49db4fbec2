package cfg

import (
	"fmt"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	if Version != "" {
		return Version
	}
	return "unknown"
}

// Keywords the monitor watches for when no explicit list is configured.
var defaultKeywords = []string{
	"artificial intelligence", "machine learning", "deep learning", "neural network",
	"chatgpt", "claude", "gemini", "openai", "anthropic", "google ai",
	"ai regulation", "ai policy", "ai governance", "ai safety", "ai ethics",
	"enterprise ai", "ai adoption", "ai investment", "ai funding", "ai startup",
	"large language model", "llm", "foundation model", "generative ai",
	"copilot", "ai assistant", "ai agent",
}

type rawCfg struct {
	// Storage configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./newswatch.db" description:"Path to the SQLite delivery database"`

	// Application configuration
	SourcesDir        string `long:"sources-dir" env:"SOURCES_DIR" default:"./sources" description:"Directory containing source configuration files"`
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	Keywords          string `long:"keywords" env:"KEYWORDS" description:"Comma-separated keyword list for relevance filtering (defaults to built-in AI keyword set)"`
	BatchLimit        int    `long:"batch-limit" env:"BATCH_LIMIT" default:"3" description:"Maximum notifications delivered per pipeline run"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"30" description:"Scheduler interval in minutes"`
	CheckTimes        string `long:"check-times" env:"CHECK_TIMES" default:"08:00,12:00,18:00" description:"Comma-separated fixed times of day (HH:MM) for additional checks"`
	APIAccessKey      string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for mutating endpoints (optional)"`

	// Notification transports
	PushoverToken string `long:"pushover-token" env:"PUSHOVER_TOKEN" description:"Pushover application token (transport disabled when empty)"`
	PushoverUser  string `long:"pushover-user" env:"PUSHOVER_USER" description:"Pushover user key (transport disabled when empty)"`
	WebhookURL    string `long:"webhook-url" env:"WEBHOOK_URL" description:"Webhook endpoint URL (transport disabled when empty)"`
	DeliveryPause int    `long:"delivery-pause" env:"DELIVERY_PAUSE" default:"2" description:"Pause between successive notifications in seconds"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Newswatch/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps and check times (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:            raw.DBPath,
		SourcesDir:        raw.SourcesDir,
		Port:              raw.Port,
		Keywords:          parseList(raw.Keywords, defaultKeywords),
		BatchLimit:        raw.BatchLimit,
		SchedulerInterval: raw.SchedulerInterval,
		CheckTimes:        parseList(raw.CheckTimes, nil),
		APIAccessKey:      raw.APIAccessKey,
		PushoverToken:     raw.PushoverToken,
		PushoverUser:      raw.PushoverUser,
		WebhookURL:        raw.WebhookURL,
		DeliveryPause:     raw.DeliveryPause,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	for _, t := range cfg.CheckTimes {
		if _, err := time.Parse("15:04", t); err != nil {
			return nil, fmt.Errorf("invalid check time %q: %w", t, err)
		}
	}

	if cfg.BatchLimit < 1 {
		return nil, fmt.Errorf("batch limit must be positive, got %d", cfg.BatchLimit)
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func parseList(value string, fallback []string) []string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}

	if len(list) == 0 {
		return fallback
	}
	return list
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
