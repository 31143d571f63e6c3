package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Persistence доступ к БД для репозиториев. Мультитабличных транзакций нет:
// согласованность заказа держится на компенсирующем удалении
type Persistence interface {
	Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Exec(ctx context.Context, query string, args ...interface{}) error
	ExecWithResult(ctx context.Context, query string, args ...interface{}) (int64, error)
	NamedExec(ctx context.Context, query string, arg interface{}) error
	QueryRow(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	// Rebind переводит плейсхолдеры "?" (после sqlx.In) в формат драйвера
	Rebind(query string) string
	Ping(ctx context.Context) error
}
