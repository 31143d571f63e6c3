package middlewares

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// WebhookPath маршрут вебхука Telegram
const WebhookPath = "/webhook"

// RequestLogger логирует завершённые запросы. Заголовки не пишем: в них токены
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		// Определяем уровень логирования в зависимости от статуса
		var logLevel slog.Level
		switch {
		case status >= 500:
			logLevel = slog.LevelError
		case status >= 400:
			logLevel = slog.LevelWarn
		default:
			logLevel = slog.LevelInfo
		}

		log.LogAttrs(req.Context(), logLevel, "request completed",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.Int("response_size", c.Writer.Size()),
			slog.String("remote_addr", req.RemoteAddr),
		)
	}
}

// Metrics считает запросы и длительность по шаблону маршрута
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTPRequest(route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
