package jobs

import (
	"context"
	"log/slog"
	"time"
)

const staleOrderCancellerName = "stale-order-canceller"

type staleOrderCanceller interface {
	CancelStale(ctx context.Context, olderThan time.Duration) (int, error)
}

// StaleOrderCanceller переводит неоплаченные заказы старше ttl в cancelled
type StaleOrderCanceller struct {
	payments staleOrderCanceller
	interval time.Duration
	ttl      time.Duration
	log      *slog.Logger
}

func NewStaleOrderCanceller(payments staleOrderCanceller, interval, ttl time.Duration, log *slog.Logger) *StaleOrderCanceller {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &StaleOrderCanceller{
		payments: payments,
		interval: interval,
		ttl:      ttl,
		log:      log,
	}
}

func (j *StaleOrderCanceller) Name() string {
	return staleOrderCancellerName
}

// NextRun каждые interval, с выравниванием по границе интервала
func (j *StaleOrderCanceller) NextRun(now time.Time) time.Time {
	return now.Truncate(j.interval).Add(j.interval)
}

func (j *StaleOrderCanceller) Run(ctx context.Context) error {
	cancelled, err := j.payments.CancelStale(ctx, j.ttl)
	if err != nil {
		return err
	}
	if cancelled > 0 {
		j.log.Info("stale pending orders cancelled", "count", cancelled, "ttl", j.ttl)
	}
	return nil
}
