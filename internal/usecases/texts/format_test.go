package texts

import (
	"strings"
	"testing"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func TestFormatWelcome(t *testing.T) {
	assert.True(t, strings.HasPrefix(FormatWelcome("Иван"), "👋 Привет, Иван!"))
	assert.True(t, strings.HasPrefix(FormatWelcome("  "), "👋 Привет, друг!"))
	assert.Contains(t, FormatWelcome("<b>x</b>"), "&lt;b&gt;x&lt;/b&gt;")
}

func TestFormatCatalog(t *testing.T) {
	subjects := []domain.Subject{
		{Title: "Математика", Price: 299, OriginalPrice: int64Ptr(499)},
		{Title: "Физика", Price: 199},
		{Title: "Химия", Price: 500, OriginalPrice: int64Ptr(400)},
	}

	got := FormatCatalog(domain.ExamEGE, subjects)

	assert.True(t, strings.HasPrefix(got, "📚 <b>ЕГЭ — Доступные предметы:</b>\n\n"))
	assert.Contains(t, got, "📖 <b>Математика</b>\n💰 299 ⭐ <s>499 ⭐</s> (-40%)")
	assert.Contains(t, got, "📖 <b>Физика</b>\n💰 199 ⭐")
	// наценка вместо скидки не показывается
	assert.Contains(t, got, "📖 <b>Химия</b>\n💰 500 ⭐\n")
	assert.NotContains(t, got, "<s>400")
	assert.True(t, strings.HasSuffix(got, "\n🛍 Откройте магазин для покупки!"))
}

func TestFormatOrders(t *testing.T) {
	id := uuid.MustParse("3f2a9c1e-0000-4000-8000-000000000001")
	orders := []domain.OrderSummary{
		{
			Order: domain.Order{
				ID:          id,
				TotalAmount: 498,
				Status:      domain.OrderStatusDelivered,
				CreatedAt:   time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC),
			},
			Titles: []string{"Математика", "Физика"},
		},
		{
			Order: domain.Order{
				ID:        uuid.MustParse("aaaaaaaa-0000-4000-8000-000000000002"),
				Status:    domain.OrderStatusPending,
				CreatedAt: time.Date(2025, 5, 21, 10, 0, 0, 0, time.UTC),
			},
		},
	}

	got := FormatOrders(orders, time.UTC)

	assert.True(t, strings.HasPrefix(got, "📦 <b>Ваши заказы:</b>\n\n"))
	assert.Contains(t, got, "📬 <b>#3f2a9c1e</b>\n📅 20.05.2025 • 498 ⭐\n📚 Математика, Физика\nСтатус: Доставлен")
	assert.Contains(t, got, "⏳ <b>#aaaaaaaa</b>")
	assert.True(t, strings.HasSuffix(got, "Статус: Ожидает оплаты"))
}

func TestFormatPromo(t *testing.T) {
	tests := []struct {
		name  string
		check domain.PromoCheck
		want  string
	}{
		{name: "valid", check: domain.PromoCheck{Status: domain.PromoValid, Code: "DISCOUNT10", DiscountPercent: 10}, want: "✅ <b>Промокод найден!</b>\n\n🎁 Код: <code>DISCOUNT10</code>\n💰 Скидка: <b>10%</b>\n\nИспользуйте его при оформлении заказа в магазине."},
		{name: "not found", check: domain.PromoCheck{Status: domain.PromoNotFound}, want: PromoNotFound},
		{name: "exhausted", check: domain.PromoCheck{Status: domain.PromoExhausted}, want: PromoExhausted},
		{name: "expired", check: domain.PromoCheck{Status: domain.PromoExpired}, want: PromoExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPromo(tt.check))
		})
	}
}

func TestFormatReceiptAndContent(t *testing.T) {
	assert.Equal(t,
		"✅ <b>Оплата получена!</b>\n\nСпасибо за покупку! Ваши материалы:\n\n📖 <b>Математика</b>\n📖 <b>Физика</b>",
		FormatReceipt([]string{"Математика", "Физика"}))

	assert.Equal(t, "📖 <b>Физика</b>\n\nответы", FormatContent("Физика", "ответы", ""))
	assert.Equal(t,
		"📖 <b>Физика</b>\n\n📎 <a href=\"https://s3/x?a=1&amp;b=2\">Скачать материалы</a>",
		FormatContent("Физика", "", "https://s3/x?a=1&b=2"))
}
