package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/adapters/primary/http/middlewares"
	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/admin/tg-bots/exam-shop-bot/internal/pkg/session"
	tgPort "github.com/admin/tg-bots/exam-shop-bot/internal/ports/telegram"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/usecase"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WebhookSettings куда регистрировать вебхук по запросу из админки
type WebhookSettings struct {
	URL    string
	Secret string
}

// Controller служебные операции, доступные только профилям с is_admin
type Controller struct {
	PaymentUseCase  usecase.IPaymentUseCase
	WebhookManager  tgPort.IWebhookManager
	Webhook         WebhookSettings
	PendingOrderTTL time.Duration
	Tokens          session.Maker
	Log             *slog.Logger
}

func New(
	paymentUseCase usecase.IPaymentUseCase,
	webhookManager tgPort.IWebhookManager,
	webhook WebhookSettings,
	pendingOrderTTL time.Duration,
	tokens session.Maker,
	log *slog.Logger,
) *Controller {
	return &Controller{
		PaymentUseCase:  paymentUseCase,
		WebhookManager:  webhookManager,
		Webhook:         webhook,
		PendingOrderTTL: pendingOrderTTL,
		Tokens:          tokens,
		Log:             log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	admin := router.Group("/admin",
		middlewares.SessionFromBearer(c.Tokens, c.Log),
		middlewares.RequireAdmin(),
	)
	{
		admin.POST("/orders/:id/cancel", c.cancelOrder)
		admin.POST("/orders/expire", c.expireOrders)
		admin.GET("/webhook", c.webhookInfo)
		admin.POST("/webhook", c.setupWebhook)
	}
}

func (c *Controller) cancelOrder(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid order id"})
		return
	}

	if err := c.PaymentUseCase.CancelOrder(ctx.Request.Context(), orderID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
		case errors.Is(err, domain.ErrInvalidTransition):
			ctx.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
		default:
			c.Log.Error("failed to cancel order", "error", err, "order_id", orderID)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to cancel order"})
		}
		return
	}

	c.Log.Info("order cancelled by admin", "order_id", orderID)
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// expireOrders ручной запуск того же, что делает джоба stale-order-canceller
func (c *Controller) expireOrders(ctx *gin.Context) {
	cancelled, err := c.PaymentUseCase.CancelStale(ctx.Request.Context(), c.PendingOrderTTL)
	if err != nil {
		c.Log.Error("failed to expire stale orders", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to expire orders"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "cancelled": cancelled})
}

func (c *Controller) webhookInfo(ctx *gin.Context) {
	info, err := c.WebhookManager.GetWebhookInfo(ctx.Request.Context())
	if err != nil {
		c.Log.Error("failed to get webhook info", "error", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to get webhook info"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "webhookInfo": info})
}

// setupWebhook перерегистрирует вебхук и возвращает актуальное состояние
func (c *Controller) setupWebhook(ctx *gin.Context) {
	if c.Webhook.URL == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "webhook url is not configured"})
		return
	}

	if err := c.WebhookManager.SetWebhook(ctx.Request.Context(), c.Webhook.URL, c.Webhook.Secret); err != nil {
		c.Log.Error("failed to set webhook", "error", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to set webhook"})
		return
	}

	info, err := c.WebhookManager.GetWebhookInfo(ctx.Request.Context())
	if err != nil {
		c.Log.Warn("webhook set, but failed to read webhook info", "error", err)
		ctx.JSON(http.StatusOK, gin.H{"success": true, "setWebhook": true})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "setWebhook": true, "webhookInfo": info})
}
