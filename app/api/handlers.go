package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"newswatch/app/database"
	"newswatch/app/pipeline"
	"newswatch/app/source"
)

const recentItemsLimit = 20

// Monitor is the pipeline surface the API depends on.
type Monitor interface {
	Run(ctx context.Context) pipeline.Result
	RecentItems(ctx context.Context, limit int) []pipeline.ItemStatus
	TestNotification(ctx context.Context) bool
}

type Handler struct {
	monitor     Monitor
	store       database.DeliveryStore
	configCache *source.ConfigCache
}

func NewHandler(monitor Monitor, store database.DeliveryStore, configCache *source.ConfigCache) *Handler {
	return &Handler{
		monitor:     monitor,
		store:       store,
		configCache: configCache,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"sources":   h.configCache.GetConfigCount(),
	}

	if count, err := h.store.Count(); err == nil {
		health["deliveries"] = count
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) APIGetArticles(c *gin.Context) {
	items := h.monitor.RecentItems(c.Request.Context(), recentItemsLimit)

	articles := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		article := map[string]interface{}{
			"title":   item.Title,
			"url":     item.URL,
			"source":  item.SourceName,
			"summary": item.Summary,
			"sent":    item.Sent,
		}
		if item.PublishedAt != nil {
			article["published_at"] = item.PublishedAt.Format(time.RFC3339)
		}
		articles = append(articles, article)
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"articles":  articles,
		"count":     len(articles),
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"success":   true,
	})
}

func (h *Handler) APICheckNews(c *gin.Context) {
	result := h.monitor.Run(c.Request.Context())

	c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"skipped":      result.Skipped,
		"new_articles": len(result.NewItems),
		"delivered":    result.Delivered,
		"timestamp":    time.Now().In(time.Local).Format(time.RFC3339),
	})
}

func (h *Handler) APITestNotification(c *gin.Context) {
	success := h.monitor.TestNotification(c.Request.Context())

	message := "Test notification sent successfully!"
	if !success {
		message = "No notification services configured"
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"success": success,
		"message": message,
	})
}

// ShortcutsLatest renders the most recent item as plain text, for clients
// like iOS Shortcuts that consume text rather than JSON.
func (h *Handler) ShortcutsLatest(c *gin.Context) {
	items := h.monitor.RecentItems(c.Request.Context(), 1)

	if len(items) == 0 {
		c.String(http.StatusOK, "No recent news found")
		return
	}

	latest := items[0]
	text := fmt.Sprintf("Latest News:\n\n%s\n\nSource: %s\n\n%s\n\nRead more: %s",
		latest.Title, latest.SourceName, latest.Summary, latest.URL)

	c.String(http.StatusOK, text)
}
