package miniapp

import (
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/google/uuid"
)

type AuthRequest struct {
	InitData string `json:"initData"`
}

type AuthResponse struct {
	Success      bool              `json:"success"`
	Profile      *domain.Profile   `json:"profile"`
	TelegramUser domain.WebAppUser `json:"telegramUser"`
	Token        string            `json:"token"`
	ExpiresAt    time.Time         `json:"expiresAt"`
}

type CreateOrderRequest struct {
	ProfileID  string   `json:"profileId"`
	SubjectIDs []string `json:"subjectIds"`
}

// OrderItemDTO предмет заказа в том виде, в каком его ждёт Mini App
type OrderItemDTO struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Price int64     `json:"price"`
}

type OrderDTO struct {
	domain.Order
	Items []OrderItemDTO `json:"items"`
}

type CreateOrderResponse struct {
	Success bool     `json:"success"`
	Order   OrderDTO `json:"order"`
}

type InvoiceResponse struct {
	Success     bool   `json:"success"`
	InvoiceLink string `json:"invoiceLink"`
}

type PromoResponse struct {
	Success         bool               `json:"success"`
	Code            string             `json:"code"`
	Status          domain.PromoStatus `json:"status"`
	DiscountPercent int                `json:"discountPercent,omitempty"`
}

func toOrderDTO(created *domain.CreatedOrder) OrderDTO {
	items := make([]OrderItemDTO, 0, len(created.Subjects))
	for _, s := range created.Subjects {
		items = append(items, OrderItemDTO{ID: s.ID, Title: s.Title, Price: s.Price})
	}
	return OrderDTO{Order: created.Order, Items: items}
}
