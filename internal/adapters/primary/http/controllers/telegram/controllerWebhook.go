package telegram

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/admin/tg-bots/exam-shop-bot/internal/adapters/primary/http/middlewares"
	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/admin/tg-bots/exam-shop-bot/internal/pkg/metrics"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/service"
	"github.com/gin-gonic/gin"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

type Controller struct {
	Handler service.IUpdateHandler
	Secret  string
	Log     *slog.Logger
}

// New secret может быть пустым, тогда заголовок не проверяется
func New(handler service.IUpdateHandler, secret string, log *slog.Logger) *Controller {
	return &Controller{
		Handler: handler,
		Secret:  secret,
		Log:     log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST(middlewares.WebhookPath, c.handleWebhook)
	router.GET(middlewares.WebhookPath, c.liveness)
}

func (c *Controller) liveness(ctx *gin.Context) {
	ctx.String(http.StatusOK, "Telegram webhook is running")
}

// handleWebhook Telegram ожидает 200 на любое обновление, иначе будет повторять доставку.
// Ошибки только логируются
func (c *Controller) handleWebhook(ctx *gin.Context) {
	defer ctx.String(http.StatusOK, "OK")

	if c.Secret != "" {
		got := ctx.GetHeader(secretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(c.Secret)) != 1 {
			c.Log.Warn("webhook secret token mismatch",
				"client_ip", ctx.ClientIP(),
			)
			return
		}
	}

	var update domain.Update
	if err := json.NewDecoder(ctx.Request.Body).Decode(&update); err != nil {
		metrics.IncrementWebhookUpdate("malformed")
		c.Log.Warn("failed to decode webhook update", "error", err)
		return
	}

	c.Log.Debug("received webhook update", "update_id", update.UpdateID)

	if err := c.Handler.HandleUpdate(ctx.Request.Context(), &update); err != nil {
		c.Log.Error("failed to handle update",
			"error", err,
			"update_id", update.UpdateID,
		)
	}
}
