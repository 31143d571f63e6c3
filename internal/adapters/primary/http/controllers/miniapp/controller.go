package miniapp

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/admin/tg-bots/exam-shop-bot/internal/adapters/primary/http/middlewares"
	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/admin/tg-bots/exam-shop-bot/internal/pkg/session"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/usecase"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Controller HTTP-функции, которые вызывает Mini App
type Controller struct {
	AuthUseCase    usecase.IAuthUseCase
	OrderUseCase   usecase.IOrderUseCase
	PaymentUseCase usecase.IPaymentUseCase
	PromoUseCase   usecase.IPromoUseCase
	Tokens         session.Maker
	Log            *slog.Logger
}

func New(
	authUseCase usecase.IAuthUseCase,
	orderUseCase usecase.IOrderUseCase,
	paymentUseCase usecase.IPaymentUseCase,
	promoUseCase usecase.IPromoUseCase,
	tokens session.Maker,
	log *slog.Logger,
) *Controller {
	return &Controller{
		AuthUseCase:    authUseCase,
		OrderUseCase:   orderUseCase,
		PaymentUseCase: paymentUseCase,
		PromoUseCase:   promoUseCase,
		Tokens:         tokens,
		Log:            log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/auth/telegram", c.authTelegram)
		api.GET("/promo/:code", c.checkPromo)

		withSession := api.Group("", middlewares.SessionFromBearer(c.Tokens, c.Log))
		withSession.POST("/orders", c.createOrder)
		withSession.POST("/orders/:id/invoice", middlewares.RequireSession(), c.createInvoice)
	}
}

// authTelegram обмен подписанного initData на профиль и токен сессии
func (c *Controller) authTelegram(ctx *gin.Context) {
	var req AuthRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.InitData) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing initData"})
		return
	}

	result, err := c.AuthUseCase.Authenticate(ctx.Request.Context(), req.InitData)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			c.Log.Warn("invalid telegram init data", "error", err)
			ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid Telegram data"})
		case errors.Is(err, domain.ErrForbidden):
			ctx.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Profile is blocked"})
		default:
			c.Log.Error("failed to authenticate", "error", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create profile"})
		}
		return
	}

	ctx.JSON(http.StatusOK, AuthResponse{
		Success:      true,
		Profile:      result.Profile,
		TelegramUser: result.TelegramUser,
		Token:        result.Token,
		ExpiresAt:    result.ExpiresAt,
	})
}

// createOrder оформление заказа. Токен не обязателен, но если он передан, profileId должен совпадать
func (c *Controller) createOrder(ctx *gin.Context) {
	var req CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.ProfileID == "" || len(req.SubjectIDs) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing profileId or subjectIds"})
		return
	}

	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid profileId"})
		return
	}

	subjectIDs := make([]uuid.UUID, 0, len(req.SubjectIDs))
	for _, raw := range req.SubjectIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid subjectIds"})
			return
		}
		subjectIDs = append(subjectIDs, id)
	}

	if claims, ok := middlewares.Claims(ctx); ok && claims.ProfileID != profileID {
		c.Log.Warn("order profile does not match session",
			"profile_id", profileID,
			"session_profile_id", claims.ProfileID,
		)
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	created, err := c.OrderUseCase.CreateOrder(ctx.Request.Context(), profileID, subjectIDs)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing profileId or subjectIds"})
		case errors.Is(err, domain.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Subjects not found"})
		default:
			c.Log.Error("failed to create order", "error", err, "profile_id", profileID)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create order"})
		}
		return
	}

	ctx.JSON(http.StatusOK, CreateOrderResponse{
		Success: true,
		Order:   toOrderDTO(created),
	})
}

// createInvoice ссылка на оплату Stars для openInvoice
func (c *Controller) createInvoice(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid order id"})
		return
	}

	claims, _ := middlewares.Claims(ctx)

	link, err := c.PaymentUseCase.CreateInvoiceLink(ctx.Request.Context(), orderID, claims.ProfileID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
		case errors.Is(err, domain.ErrForbidden):
			ctx.JSON(http.StatusForbidden, gin.H{"success": false, "error": "forbidden"})
		case errors.Is(err, domain.ErrValidation):
			ctx.JSON(http.StatusConflict, gin.H{"success": false, "error": "Order is not awaiting payment"})
		case errors.Is(err, domain.ErrUpstream):
			c.Log.Error("telegram refused invoice", "error", err, "order_id", orderID)
			ctx.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to create invoice"})
		default:
			c.Log.Error("failed to create invoice", "error", err, "order_id", orderID)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create invoice"})
		}
		return
	}

	ctx.JSON(http.StatusOK, InvoiceResponse{Success: true, InvoiceLink: link})
}

// checkPromo проверка промокода для корзины, скидка здесь не применяется
func (c *Controller) checkPromo(ctx *gin.Context) {
	check, err := c.PromoUseCase.Resolve(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		c.Log.Error("failed to resolve promo code", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to check promo code"})
		return
	}

	ctx.JSON(http.StatusOK, PromoResponse{
		Success:         check.Status == domain.PromoValid,
		Code:            check.Code,
		Status:          check.Status,
		DiscountPercent: check.DiscountPercent,
	})
}
