package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/admin/tg-bots/exam-shop-bot/internal/pkg/metrics"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/kafka"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/repository"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/service"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/usecase"
	"github.com/google/uuid"
)

type Service struct {
	SubjectRepo    repository.ISubjectRepo
	OrderRepo      repository.IOrderRepo
	CartRepo       repository.ICartRepo
	Events         kafka.IOrderEventProducer // nil, если Kafka не настроена
	AlerterService service.IAlerterService   // nil, если алертер выключен
	Log            *slog.Logger

	now func() time.Time
}

func New(
	subjectRepo repository.ISubjectRepo,
	orderRepo repository.IOrderRepo,
	cartRepo repository.ICartRepo,
	events kafka.IOrderEventProducer,
	alerterService service.IAlerterService,
	log *slog.Logger,
) *Service {
	return &Service{
		SubjectRepo:    subjectRepo,
		OrderRepo:      orderRepo,
		CartRepo:       cartRepo,
		Events:         events,
		AlerterService: alerterService,
		Log:            log,
		now:            time.Now,
	}
}

var _ usecase.IOrderUseCase = (*Service)(nil)

// saga текущий шаг оформления заказа
type saga struct {
	orderID uuid.UUID
	state   domain.OrderSagaState
	log     *slog.Logger
}

func (s *saga) advance(next domain.OrderSagaState) {
	if !s.state.CanAdvanceTo(next) {
		// шаги вызываются только из CreateOrder, сюда попадаем лишь при ошибке в коде
		s.log.Error("invalid order saga step",
			"order_id", s.orderID,
			"from", s.state.String(),
			"to", next.String())
	}
	s.state = next
}

// CreateOrder создаёт заказ из выбранных предметов. Позиции пишутся отдельным запросом,
// при их ошибке заказ удаляется (компенсация), отдельной транзакции нет
func (s *Service) CreateOrder(ctx context.Context, profileID uuid.UUID, subjectIDs []uuid.UUID) (*domain.CreatedOrder, error) {
	if profileID == uuid.Nil {
		return nil, fmt.Errorf("%w: profileId is required", domain.ErrValidation)
	}

	ids := dedupe(subjectIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: subjectIds must not be empty", domain.ErrValidation)
	}

	subjects, err := s.SubjectRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: load subjects: %v", domain.ErrPersistence, err)
	}
	if len(subjects) == 0 {
		return nil, fmt.Errorf("%w: no subjects matched", domain.ErrNotFound)
	}

	var total int64
	for _, subject := range subjects {
		total += subject.Price
	}

	order := &domain.Order{
		ID:          uuid.New(),
		ProfileID:   profileID,
		TotalAmount: total,
		Status:      domain.OrderStatusPending,
	}
	tx := &saga{orderID: order.ID, state: domain.SagaStarted, log: s.Log}

	if err := s.OrderRepo.Create(ctx, order); err != nil {
		metrics.IncrementSagaOutcome("create_failed")
		return nil, fmt.Errorf("%w: create order: %v", domain.ErrPersistence, err)
	}
	tx.advance(domain.SagaCreated)

	items := make([]domain.OrderItem, 0, len(subjects))
	for _, subject := range subjects {
		items = append(items, domain.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			SubjectID: subject.ID,
			Price:     subject.Price,
		})
	}

	if err := s.OrderRepo.InsertItems(ctx, items); err != nil {
		s.compensate(ctx, tx, err)
		return nil, fmt.Errorf("%w: insert order items: %v", domain.ErrPersistence, err)
	}
	tx.advance(domain.SagaItemsInserted)

	// корзина чистится по возможности, ошибка не отменяет заказ
	purchased := make([]uuid.UUID, 0, len(subjects))
	for _, subject := range subjects {
		purchased = append(purchased, subject.ID)
	}
	if _, err := s.CartRepo.DeleteItems(ctx, profileID, purchased); err != nil {
		s.Log.Warn("failed to clear cart after order",
			"error", err,
			"order_id", order.ID,
			"profile_id", profileID)
	}

	tx.advance(domain.SagaCommitted)
	metrics.IncrementSagaOutcome(tx.state.String())
	metrics.IncrementOrderTransition(string(domain.OrderStatusPending))

	s.publish(ctx, domain.OrderEvent{
		Type:        domain.OrderEventCreated,
		OrderID:     order.ID,
		ProfileID:   &profileID,
		Status:      order.Status,
		TotalAmount: &total,
		OccurredAt:  s.now(),
	})

	s.Log.Info("order created",
		"order_id", order.ID,
		"profile_id", profileID,
		"items", len(items),
		"total_amount", total)

	return &domain.CreatedOrder{
		Order:    *order,
		Items:    items,
		Subjects: subjects,
	}, nil
}

// compensate удаляет заказ без позиций
func (s *Service) compensate(ctx context.Context, tx *saga, cause error) {
	tx.advance(domain.SagaRollingBack)

	if err := s.OrderRepo.Delete(ctx, tx.orderID); err != nil {
		tx.advance(domain.SagaRollbackFailed)
		metrics.IncrementSagaOutcome(tx.state.String())
		s.Log.Error("order rollback failed, orphan order left",
			"error", err,
			"cause", cause,
			"order_id", tx.orderID)

		if s.AlerterService != nil {
			msg := fmt.Sprintf("Не удалось удалить заказ %s после ошибки вставки позиций.\nПричина: %v\nОшибка удаления: %v",
				tx.orderID, cause, err)
			if alertErr := s.AlerterService.SendAlert(ctx, msg); alertErr != nil {
				s.Log.Warn("failed to send rollback alert", "error", alertErr)
			}
		}
		return
	}

	tx.advance(domain.SagaRolledBack)
	metrics.IncrementSagaOutcome(tx.state.String())
	s.Log.Warn("order rolled back",
		"cause", cause,
		"order_id", tx.orderID)
}

func (s *Service) publish(ctx context.Context, event domain.OrderEvent) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishOrderEvent(ctx, event); err != nil && !errors.Is(err, context.Canceled) {
		s.Log.Warn("failed to publish order event",
			"error", err,
			"event_type", event.Type,
			"order_id", event.OrderID)
	}
}

// dedupe убирает повторы и нулевые id, порядок сохраняется
func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
