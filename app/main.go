package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newswatch/app/api"
	"newswatch/app/cfg"
	"newswatch/app/database"
	"newswatch/app/news"
	"newswatch/app/notify"
	"newswatch/app/pipeline"
	"newswatch/app/scheduler"
	"newswatch/app/source"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Newswatch", "version", appCfg.Version)

	db, err := database.Open(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open delivery database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	configCache := source.NewConfigCache(appCfg.SourcesDir)
	if err := configCache.Run(); err != nil {
		slog.Error("Failed to load source configurations", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded source configurations", "count", configCache.GetConfigCount())

	httpClient := &http.Client{Timeout: 30 * time.Second}
	fetcher := source.NewFetcher(httpClient, appCfg.UserAgent)
	extractor := source.NewContentExtractor(httpClient, appCfg.UserAgent)
	filterer := news.NewFilterer(appCfg.Keywords)
	store := database.NewDeliveryRepository(db)

	transports := []notify.Transport{
		notify.NewPushover(appCfg.PushoverToken, appCfg.PushoverUser),
		notify.NewWebhook(appCfg.WebhookURL),
	}
	deliverer := notify.NewDeliverer(transports, time.Duration(appCfg.DeliveryPause)*time.Second)
	if !deliverer.HasEnabledTransport() {
		slog.Warn("No notification transports configured, items will be detected but not delivered")
	}

	monitor := pipeline.NewPipeline(configCache, fetcher, extractor, filterer, store, deliverer, appCfg.BatchLimit)

	sched := scheduler.NewScheduler(monitor,
		time.Duration(appCfg.SchedulerInterval)*time.Minute, appCfg.CheckTimes)
	sched.Start()
	defer sched.Stop()
	slog.Info("Background scheduler started",
		"interval_minutes", appCfg.SchedulerInterval, "check_times", appCfg.CheckTimes)

	apiHandler := api.NewHandler(monitor, store, configCache)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Newswatch shutdown complete")
}
