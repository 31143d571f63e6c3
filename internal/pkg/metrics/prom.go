package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// WebhookUpdates входящие обновления по результату классификации
	WebhookUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_shop_webhook_updates_total",
			Help: "Total number of inbound Telegram updates by kind",
		},
		[]string{"kind"}, // text, callback_query, pre_checkout_query, successful_payment, unrecognized, malformed
	)

	// HandlerErrors ошибки обработки обновлений, ответ Telegram при этом всё равно 200
	HandlerErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_shop_handler_errors_total",
			Help: "Total number of update handling errors",
		},
		[]string{"kind"},
	)

	BotAPIErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_shop_bot_api_errors_total",
			Help: "Total number of failed Telegram Bot API calls",
		},
		[]string{"method"},
	)

	// OrderTransitions переходы статусов заказа
	OrderTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_shop_order_transitions_total",
			Help: "Total number of order status transitions",
		},
		[]string{"to"}, // pending, paid, delivered, cancelled
	)

	// OrderSagaOutcomes итог оформления заказа
	OrderSagaOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_shop_order_saga_outcomes_total",
			Help: "Total number of order creation outcomes by final saga state",
		},
		[]string{"state"},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_shop_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "exam_shop_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

func init() {
	prometheus.MustRegister(WebhookUpdates)
	prometheus.MustRegister(HandlerErrors)
	prometheus.MustRegister(BotAPIErrors)
	prometheus.MustRegister(OrderTransitions)
	prometheus.MustRegister(OrderSagaOutcomes)
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(HTTPDuration)
}

func IncrementWebhookUpdate(kind string) {
	WebhookUpdates.WithLabelValues(kind).Inc()
}

func IncrementHandlerError(kind string) {
	HandlerErrors.WithLabelValues(kind).Inc()
}

func IncrementBotAPIError(method string) {
	BotAPIErrors.WithLabelValues(method).Inc()
}

func IncrementOrderTransition(to string) {
	OrderTransitions.WithLabelValues(to).Inc()
}

func IncrementSagaOutcome(state string) {
	OrderSagaOutcomes.WithLabelValues(state).Inc()
}

// ObserveHTTPRequest фиксирует запрос и его длительность в секундах
func ObserveHTTPRequest(route, status string, seconds float64) {
	HTTPRequests.WithLabelValues(route, status).Inc()
	HTTPDuration.WithLabelValues(route).Observe(seconds)
}
