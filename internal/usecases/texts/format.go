package texts

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
)

// FormatWelcome приветствие, пустое имя заменяется на обращение по умолчанию
func FormatWelcome(firstName string) string {
	name := strings.TrimSpace(firstName)
	if name == "" {
		name = WelcomeFallbackName
	}
	return fmt.Sprintf(Welcome, html.EscapeString(name))
}

// FormatCatalog список предметов категории. Скидка показывается только если она положительная
func FormatCatalog(exam domain.ExamType, subjects []domain.Subject) string {
	var message strings.Builder
	message.WriteString(fmt.Sprintf(CatalogHeader, exam.Label()))

	for _, subject := range subjects {
		message.WriteString(fmt.Sprintf(CatalogItem, html.EscapeString(subject.Title), subject.Price))
		if discount := subject.DiscountPercent(); discount > 0 {
			message.WriteString(fmt.Sprintf(CatalogItemStrike, *subject.OriginalPrice, discount))
		}
		message.WriteString("\n\n")
	}

	message.WriteString(CatalogFooter)
	return message.String()
}

// FormatOrders история заказов
func FormatOrders(orders []domain.OrderSummary, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	var message strings.Builder
	message.WriteString(OrdersHeader)

	for _, order := range orders {
		id := order.ID.String()[:8]
		message.WriteString(fmt.Sprintf(OrderLine,
			OrderStatusEmoji(order.Status),
			id,
			order.CreatedAt.In(loc).Format("02.01.2006"),
			order.TotalAmount))

		if len(order.Titles) > 0 {
			escaped := make([]string, 0, len(order.Titles))
			for _, title := range order.Titles {
				escaped = append(escaped, html.EscapeString(title))
			}
			message.WriteString(fmt.Sprintf(OrderTitles, strings.Join(escaped, ", ")))
		}
		message.WriteString(fmt.Sprintf(OrderStatusLine, OrderStatusLabel(order.Status)))
	}

	return strings.TrimRight(message.String(), "\n")
}

func OrderStatusEmoji(status domain.OrderStatus) string {
	switch status {
	case domain.OrderStatusPending:
		return "⏳"
	case domain.OrderStatusPaid:
		return "✅"
	case domain.OrderStatusDelivered:
		return "📬"
	case domain.OrderStatusCancelled:
		return "❌"
	default:
		return "•"
	}
}

func OrderStatusLabel(status domain.OrderStatus) string {
	switch status {
	case domain.OrderStatusPending:
		return "Ожидает оплаты"
	case domain.OrderStatusPaid:
		return "Оплачен"
	case domain.OrderStatusDelivered:
		return "Доставлен"
	case domain.OrderStatusCancelled:
		return "Отменён"
	default:
		return string(status)
	}
}

// FormatPromo ответ на проверку промокода
func FormatPromo(check domain.PromoCheck) string {
	switch check.Status {
	case domain.PromoValid:
		return fmt.Sprintf(PromoValid, html.EscapeString(check.Code), check.DiscountPercent)
	case domain.PromoExhausted:
		return PromoExhausted
	case domain.PromoExpired:
		return PromoExpired
	default:
		return PromoNotFound
	}
}

// FormatReceipt чек после оплаты со списком купленных предметов
func FormatReceipt(titles []string) string {
	lines := make([]string, 0, len(titles))
	for _, title := range titles {
		lines = append(lines, fmt.Sprintf(PaymentReceiptItem, html.EscapeString(title)))
	}
	return PaymentReceipt + strings.Join(lines, "\n")
}

// FormatContent сообщение с материалами предмета. body уже готов к отправке (HTML автора материала)
func FormatContent(title, body, link string) string {
	parts := make([]string, 0, 2)
	if body != "" {
		parts = append(parts, body)
	}
	if link != "" {
		parts = append(parts, fmt.Sprintf(PaymentContentLink, html.EscapeString(link)))
	}
	return fmt.Sprintf(PaymentContent, html.EscapeString(title), strings.Join(parts, "\n\n"))
}
