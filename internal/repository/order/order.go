package orderRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/persistence"
	ports "github.com/admin/tg-bots/exam-shop-bot/internal/ports/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type orderColumns struct {
	TableName   string
	ID          string
	ProfileID   string
	TotalAmount string
	Status      string
	ChargeID    string
	CreatedAt   string
	UpdatedAt   string
}

type itemColumns struct {
	TableName string
	ID        string
	OrderID   string
	SubjectID string
	Price     string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns orderColumns
	items   itemColumns
}

// New создаёт репозиторий заказов и позиций заказа
func New(db persistence.Persistence, log *slog.Logger) ports.IOrderRepo {
	return &Repository{
		db:  db,
		Log: log,
		columns: orderColumns{
			TableName:   "orders",
			ID:          "id",
			ProfileID:   "profile_id",
			TotalAmount: "total_amount",
			Status:      "status",
			ChargeID:    "telegram_payment_charge_id",
			CreatedAt:   "created_at",
			UpdatedAt:   "updated_at",
		},
		items: itemColumns{
			TableName: "order_items",
			ID:        "id",
			OrderID:   "order_id",
			SubjectID: "subject_id",
			Price:     "price",
		},
	}
}

// allColumns возвращает строку со всеми колонками заказа (7 колонок)
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.ProfileID,
		r.columns.TotalAmount,
		r.columns.Status,
		r.columns.ChargeID,
		r.columns.CreatedAt,
		r.columns.UpdatedAt)
}

// Create вставляет заказ, created_at и updated_at выставляет БД
func (r *Repository) Create(ctx context.Context, order *domain.Order) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s, %s`,
		r.columns.TableName,
		r.columns.ID,
		r.columns.ProfileID,
		r.columns.TotalAmount,
		r.columns.Status,
		r.columns.CreatedAt,
		r.columns.UpdatedAt)

	err := r.db.QueryRow(ctx, query,
		order.ID,
		order.ProfileID,
		order.TotalAmount,
		string(order.Status)).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		r.Log.Error("failed to create order",
			"error", err,
			"order_id", order.ID,
			"profile_id", order.ProfileID)
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.Log.Debug("order created",
		"order_id", order.ID,
		"total_amount", order.TotalAmount)
	return nil
}

// InsertItems пачкой вставляет позиции одного заказа
func (r *Repository) InsertItems(ctx context.Context, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES (:%s, :%s, :%s, :%s)`,
		r.items.TableName,
		r.items.ID, r.items.OrderID, r.items.SubjectID, r.items.Price,
		r.items.ID, r.items.OrderID, r.items.SubjectID, r.items.Price)

	if err := r.db.NamedExec(ctx, query, items); err != nil {
		r.Log.Error("failed to insert order items",
			"error", err,
			"order_id", items[0].OrderID,
			"items_count", len(items))
		return fmt.Errorf("failed to insert order items: %w", err)
	}
	return nil
}

// Delete удаляет заказ, позиции уходят каскадом
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, r.columns.TableName, r.columns.ID)
	if err := r.db.Exec(ctx, query, id); err != nil {
		r.Log.Error("failed to delete order",
			"error", err,
			"order_id", id)
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// GetByID получает заказ по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ID)

	var order domain.Order
	if err := r.db.Get(ctx, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
		}
		r.Log.Error("failed to get order",
			"error", err,
			"order_id", id)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

type orderTitle struct {
	OrderID uuid.UUID `db:"order_id"`
	Title   string    `db:"title"`
}

// ListByProfile последние заказы профиля с названиями купленных предметов
func (r *Repository) ListByProfile(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.OrderSummary, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC LIMIT $2`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ProfileID,
		r.columns.CreatedAt)

	var orders []domain.Order
	if err := r.db.Select(ctx, &orders, query, profileID, limit); err != nil {
		r.Log.Error("failed to list orders",
			"error", err,
			"profile_id", profileID)
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	titlesQuery, args, err := sqlx.In(fmt.Sprintf(`SELECT oi.%s, s.title FROM %s oi JOIN subjects s ON s.id = oi.%s WHERE oi.%s IN (?) ORDER BY s.title`,
		r.items.OrderID,
		r.items.TableName,
		r.items.SubjectID,
		r.items.OrderID), ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build order titles query: %w", err)
	}

	var titles []orderTitle
	if err := r.db.Select(ctx, &titles, r.db.Rebind(titlesQuery), args...); err != nil {
		r.Log.Error("failed to list order titles",
			"error", err,
			"profile_id", profileID)
		return nil, fmt.Errorf("failed to list order titles: %w", err)
	}

	byOrder := make(map[uuid.UUID][]string, len(orders))
	for _, t := range titles {
		byOrder[t.OrderID] = append(byOrder[t.OrderID], t.Title)
	}

	summaries := make([]domain.OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, domain.OrderSummary{Order: o, Titles: byOrder[o.ID]})
	}
	return summaries, nil
}

// ListLines позиции заказа вместе с материалами предметов
func (r *Repository) ListLines(ctx context.Context, orderID uuid.UUID) ([]domain.OrderLine, error) {
	query := fmt.Sprintf(`SELECT oi.%s, oi.%s, s.title, oi.%s, s.full_content, s.content_key FROM %s oi JOIN subjects s ON s.id = oi.%s WHERE oi.%s = $1 ORDER BY s.title`,
		r.items.OrderID,
		r.items.SubjectID,
		r.items.Price,
		r.items.TableName,
		r.items.SubjectID,
		r.items.OrderID)

	var lines []domain.OrderLine
	if err := r.db.Select(ctx, &lines, query, orderID); err != nil {
		r.Log.Error("failed to list order lines",
			"error", err,
			"order_id", orderID)
		return nil, fmt.Errorf("failed to list order lines: %w", err)
	}
	return lines, nil
}

// MarkPaid pending→paid с сохранением charge id. Повторная оплата того же заказа даёт false
func (r *Repository) MarkPaid(ctx context.Context, id uuid.UUID, chargeID string) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = NOW() WHERE %s = $3 AND %s = $4`,
		r.columns.TableName,
		r.columns.Status,
		r.columns.ChargeID,
		r.columns.UpdatedAt,
		r.columns.ID,
		r.columns.Status)

	affected, err := r.db.ExecWithResult(ctx, query,
		string(domain.OrderStatusPaid),
		chargeID,
		id,
		string(domain.OrderStatusPending))
	if err != nil {
		r.Log.Error("failed to mark order paid",
			"error", err,
			"order_id", id)
		return false, fmt.Errorf("failed to mark order paid: %w", err)
	}
	return affected == 1, nil
}

// UpdateStatus условный переход статуса, недопустимый переход отклоняется до запроса
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) (bool, error) {
	if !from.CanTransitionTo(to) {
		return false, fmt.Errorf("%s -> %s: %w", from, to, domain.ErrInvalidTransition)
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2 AND %s = $3`,
		r.columns.TableName,
		r.columns.Status,
		r.columns.UpdatedAt,
		r.columns.ID,
		r.columns.Status)

	affected, err := r.db.ExecWithResult(ctx, query, string(to), id, string(from))
	if err != nil {
		r.Log.Error("failed to update order status",
			"error", err,
			"order_id", id,
			"from", from,
			"to", to)
		return false, fmt.Errorf("failed to update order status: %w", err)
	}
	return affected == 1, nil
}

// ListStalePending id неоплаченных заказов, созданных раньше createdBefore
func (r *Repository) ListStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s < $2 ORDER BY %s LIMIT $3`,
		r.columns.ID,
		r.columns.TableName,
		r.columns.Status,
		r.columns.CreatedAt,
		r.columns.CreatedAt)

	var ids []uuid.UUID
	if err := r.db.Select(ctx, &ids, query, string(domain.OrderStatusPending), createdBefore, limit); err != nil {
		r.Log.Error("failed to list stale orders",
			"error", err)
		return nil, fmt.Errorf("failed to list stale orders: %w", err)
	}
	return ids, nil
}
