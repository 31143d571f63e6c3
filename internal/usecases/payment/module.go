package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/admin/tg-bots/exam-shop-bot/internal/pkg/metrics"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/kafka"
	paymentPort "github.com/admin/tg-bots/exam-shop-bot/internal/ports/payment"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/repository"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/service"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/storage"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/usecase"
	"github.com/admin/tg-bots/exam-shop-bot/internal/usecases/texts"
	"github.com/google/uuid"
)

const (
	staleBatchSize        = 100
	defaultContentLinkTTL = 24 * time.Hour
)

type Service struct {
	OrderRepo       repository.IOrderRepo
	PaymentProvider paymentPort.IPaymentProvider // Telegram Stars провайдер
	TelegramService service.ITelegramService
	ContentStorage  storage.IContentStorage   // nil, если S3 не настроен
	Events          kafka.IOrderEventProducer // nil, если Kafka не настроена
	AlerterService  service.IAlerterService   // nil, если алертер выключен
	Log             *slog.Logger

	contentLinkTTL time.Duration
	now            func() time.Time
}

func New(
	orderRepo repository.IOrderRepo,
	paymentProvider paymentPort.IPaymentProvider,
	telegramService service.ITelegramService,
	contentStorage storage.IContentStorage,
	events kafka.IOrderEventProducer,
	alerterService service.IAlerterService,
	contentLinkTTL time.Duration,
	log *slog.Logger,
) *Service {
	if contentLinkTTL <= 0 {
		contentLinkTTL = defaultContentLinkTTL
	}
	return &Service{
		OrderRepo:       orderRepo,
		PaymentProvider: paymentProvider,
		TelegramService: telegramService,
		ContentStorage:  contentStorage,
		Events:          events,
		AlerterService:  alerterService,
		Log:             log,
		contentLinkTTL:  contentLinkTTL,
		now:             time.Now,
	}
}

var _ usecase.IPaymentUseCase = (*Service)(nil)

// HandlePreCheckout одно чтение заказа и ответ Telegram. Подтверждаем только pending заказ
// с совпадающей суммой в звёздах
func (s *Service) HandlePreCheckout(ctx context.Context, query *domain.PreCheckoutQuery) error {
	if query == nil || query.ID == "" {
		return fmt.Errorf("%w: empty pre_checkout_query", domain.ErrValidation)
	}

	payload, err := domain.DecodeInvoicePayload(query.InvoicePayload)
	if err != nil {
		s.Log.Warn("pre_checkout_query with invalid payload",
			"query_id", query.ID,
			"error", err)
		return s.decline(ctx, query.ID, texts.DeclineOrderUnavailable)
	}

	order, err := s.OrderRepo.GetByID(ctx, payload.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.Log.Warn("order not found for pre_checkout_query",
				"query_id", query.ID,
				"order_id", payload.OrderID)
			return s.decline(ctx, query.ID, texts.DeclineOrderUnavailable)
		}
		// Telegram ждёт ответа, поэтому отказываем и отдаём ошибку хранилища наверх
		declineErr := s.decline(ctx, query.ID, texts.DeclineTemporary)
		return errors.Join(fmt.Errorf("%w: load order: %v", domain.ErrPersistence, err), declineErr)
	}

	if order.Status != domain.OrderStatusPending {
		s.Log.Warn("order already processed",
			"query_id", query.ID,
			"order_id", order.ID,
			"status", order.Status)
		return s.decline(ctx, query.ID, texts.DeclineOrderUnavailable)
	}

	if query.Currency != domain.CurrencyStars || query.TotalAmount != order.TotalAmount {
		s.Log.Warn("pre_checkout_query amount mismatch",
			"query_id", query.ID,
			"order_id", order.ID,
			"order_amount", order.TotalAmount,
			"query_amount", query.TotalAmount,
			"query_currency", query.Currency)
		return s.decline(ctx, query.ID, texts.DeclineAmountMismatch)
	}

	if err := s.PaymentProvider.ConfirmPreCheckout(ctx, query.ID, domain.PreCheckoutDecision{OK: true}); err != nil {
		return fmt.Errorf("failed to confirm pre_checkout_query: %w", err)
	}

	s.Log.Info("pre_checkout_query confirmed",
		"query_id", query.ID,
		"order_id", order.ID)
	return nil
}

func (s *Service) decline(ctx context.Context, queryID, reason string) error {
	if err := s.PaymentProvider.ConfirmPreCheckout(ctx, queryID, domain.PreCheckoutDecision{OK: false, Reason: reason}); err != nil {
		return fmt.Errorf("failed to decline pre_checkout_query: %w", err)
	}
	return nil
}

// HandleSuccessfulPayment pending→paid, чек, материалы, затем paid→delivered.
// Повторное уведомление об оплате того же заказа ничего не отправляет
func (s *Service) HandleSuccessfulPayment(ctx context.Context, chatID int64, payment *domain.SuccessfulPayment) error {
	if payment == nil {
		return fmt.Errorf("%w: empty successful_payment", domain.ErrValidation)
	}

	payload, err := domain.DecodeInvoicePayload(payment.InvoicePayload)
	if err != nil {
		s.Log.Error("successful_payment with invalid payload",
			"error", err,
			"charge_id", payment.TelegramPaymentChargeID)
		return err
	}
	orderID := payload.OrderID

	marked, err := s.OrderRepo.MarkPaid(ctx, orderID, payment.TelegramPaymentChargeID)
	if err != nil {
		s.alert(ctx, fmt.Sprintf("Оплата заказа %s получена, но статус не обновлён.\nCharge ID: %s\nОшибка: %v",
			orderID, payment.TelegramPaymentChargeID, err))
		return fmt.Errorf("%w: mark order paid: %v", domain.ErrPersistence, err)
	}
	if !marked {
		s.Log.Warn("payment already processed, skipping delivery",
			"order_id", orderID,
			"charge_id", payment.TelegramPaymentChargeID)
		return nil
	}

	metrics.IncrementOrderTransition(string(domain.OrderStatusPaid))
	chargeID := payment.TelegramPaymentChargeID
	amount := payment.TotalAmount
	s.publish(ctx, domain.OrderEvent{
		Type:        domain.OrderEventPaid,
		OrderID:     orderID,
		Status:      domain.OrderStatusPaid,
		TotalAmount: &amount,
		ChargeID:    &chargeID,
		OccurredAt:  s.now(),
	})

	s.Log.Info("order paid",
		"order_id", orderID,
		"amount", payment.TotalAmount,
		"charge_id", chargeID)

	lines, err := s.OrderRepo.ListLines(ctx, orderID)
	if err != nil {
		s.alert(ctx, fmt.Sprintf("Заказ %s оплачен, но позиции не загружены, материалы не выданы.\nОшибка: %v", orderID, err))
		return fmt.Errorf("%w: load order lines: %v", domain.ErrPersistence, err)
	}

	if failed := s.deliver(ctx, chatID, orderID, lines); failed > 0 {
		s.alert(ctx, fmt.Sprintf("Заказ %s оплачен, но %d сообщений с материалами не отправлено. Заказ остаётся в статусе paid.", orderID, failed))
		return nil
	}

	delivered, err := s.OrderRepo.UpdateStatus(ctx, orderID, domain.OrderStatusPaid, domain.OrderStatusDelivered)
	if err != nil {
		return fmt.Errorf("%w: mark order delivered: %v", domain.ErrPersistence, err)
	}
	if !delivered {
		s.Log.Warn("order left paid state before delivery mark", "order_id", orderID)
		return nil
	}

	metrics.IncrementOrderTransition(string(domain.OrderStatusDelivered))
	s.publish(ctx, domain.OrderEvent{
		Type:       domain.OrderEventDelivered,
		OrderID:    orderID,
		Status:     domain.OrderStatusDelivered,
		OccurredAt: s.now(),
	})

	s.Log.Info("order delivered",
		"order_id", orderID,
		"items", len(lines))
	return nil
}

// deliver отправляет чек и материалы, возвращает число неудачных отправок
func (s *Service) deliver(ctx context.Context, chatID int64, orderID uuid.UUID, lines []domain.OrderLine) int {
	failed := 0

	titles := make([]string, 0, len(lines))
	for _, line := range lines {
		titles = append(titles, line.Title)
	}
	if err := s.TelegramService.SendMessage(ctx, chatID, texts.FormatReceipt(titles), nil); err != nil {
		failed++
	}

	for _, line := range lines {
		if !line.HasContent() {
			continue
		}

		text, err := s.contentMessage(ctx, line)
		if err != nil {
			s.Log.Error("failed to resolve subject content",
				"error", err,
				"order_id", orderID,
				"subject_id", line.SubjectID)
			failed++
			continue
		}

		if err := s.TelegramService.SendMessage(ctx, chatID, text, nil); err != nil {
			s.Log.Error("failed to deliver subject content",
				"error", err,
				"order_id", orderID,
				"subject_id", line.SubjectID)
			failed++
		}
	}

	if failed > 0 {
		if err := s.TelegramService.SendMessage(ctx, chatID, texts.PaymentContentDelay, nil); err != nil {
			s.Log.Warn("failed to send delivery delay notice", "error", err, "order_id", orderID)
		}
	}
	return failed
}

func (s *Service) contentMessage(ctx context.Context, line domain.OrderLine) (string, error) {
	var body, link string
	if line.FullContent != nil {
		body = *line.FullContent
	}

	if line.ContentKey != nil && *line.ContentKey != "" {
		if s.ContentStorage == nil {
			if body == "" {
				return "", fmt.Errorf("content key %q set but object storage is not configured", *line.ContentKey)
			}
		} else {
			url, err := s.ContentStorage.GetPresignedURL(ctx, *line.ContentKey, s.contentLinkTTL)
			if err != nil {
				return "", err
			}
			link = url
		}
	}

	return texts.FormatContent(line.Title, body, link), nil
}

// CreateInvoiceLink ссылка на оплату заказа для Mini App (openInvoice)
func (s *Service) CreateInvoiceLink(ctx context.Context, orderID, profileID uuid.UUID) (string, error) {
	order, err := s.OrderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf("%w: load order: %v", domain.ErrPersistence, err)
	}
	if order.ProfileID != profileID {
		return "", fmt.Errorf("%w: order belongs to another profile", domain.ErrForbidden)
	}
	if order.Status != domain.OrderStatusPending {
		return "", fmt.Errorf("%w: order is %s", domain.ErrValidation, order.Status)
	}

	lines, err := s.OrderRepo.ListLines(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("%w: load order lines: %v", domain.ErrPersistence, err)
	}

	prices := make([]domain.LabeledPrice, 0, len(lines))
	titles := make([]string, 0, len(lines))
	for _, line := range lines {
		prices = append(prices, domain.LabeledPrice{Label: line.Title, Amount: line.Price})
		titles = append(titles, line.Title)
	}
	if len(prices) == 0 {
		return "", fmt.Errorf("%w: order has no items", domain.ErrValidation)
	}

	link, err := s.PaymentProvider.CreateInvoiceLink(ctx, domain.Invoice{
		OrderID:     orderID,
		Title:       fmt.Sprintf("Заказ #%s", orderID.String()[:8]),
		Description: strings.Join(titles, ", "),
		Payload:     domain.InvoicePayload{OrderID: orderID},
		Currency:    domain.CurrencyStars,
		Prices:      prices,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create invoice link: %w", err)
	}
	return link, nil
}

// CancelOrder pending→cancelled, для оплаченных и доставленных заказов ErrInvalidTransition
func (s *Service) CancelOrder(ctx context.Context, orderID uuid.UUID) error {
	cancelled, err := s.OrderRepo.UpdateStatus(ctx, orderID, domain.OrderStatusPending, domain.OrderStatusCancelled)
	if err != nil {
		return fmt.Errorf("%w: cancel order: %v", domain.ErrPersistence, err)
	}
	if !cancelled {
		order, err := s.OrderRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: order is %s", domain.ErrInvalidTransition, order.Status)
	}

	s.onCancelled(ctx, orderID)
	return nil
}

// CancelStale отменяет pending заказы старше olderThan. Заказ, оплаченный между выборкой
// и обновлением, пропускается условным UPDATE
func (s *Service) CancelStale(ctx context.Context, olderThan time.Duration) (int, error) {
	ids, err := s.OrderRepo.ListStalePending(ctx, s.now().Add(-olderThan), staleBatchSize)
	if err != nil {
		return 0, fmt.Errorf("%w: list stale orders: %v", domain.ErrPersistence, err)
	}

	cancelled := 0
	for _, id := range ids {
		ok, err := s.OrderRepo.UpdateStatus(ctx, id, domain.OrderStatusPending, domain.OrderStatusCancelled)
		if err != nil {
			return cancelled, fmt.Errorf("%w: cancel stale order %s: %v", domain.ErrPersistence, id, err)
		}
		if ok {
			cancelled++
			s.onCancelled(ctx, id)
		}
	}
	return cancelled, nil
}

func (s *Service) onCancelled(ctx context.Context, orderID uuid.UUID) {
	metrics.IncrementOrderTransition(string(domain.OrderStatusCancelled))
	s.publish(ctx, domain.OrderEvent{
		Type:       domain.OrderEventCancelled,
		OrderID:    orderID,
		Status:     domain.OrderStatusCancelled,
		OccurredAt: s.now(),
	})
	s.Log.Info("order cancelled", "order_id", orderID)
}

func (s *Service) publish(ctx context.Context, event domain.OrderEvent) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishOrderEvent(ctx, event); err != nil {
		s.Log.Warn("failed to publish order event",
			"error", err,
			"event_type", event.Type,
			"order_id", event.OrderID)
	}
}

func (s *Service) alert(ctx context.Context, message string) {
	s.Log.Error("payment flow needs attention", "details", message)
	if s.AlerterService == nil {
		return
	}
	if err := s.AlerterService.SendAlert(ctx, message); err != nil {
		s.Log.Warn("failed to send payment alert", "error", err)
	}
}
