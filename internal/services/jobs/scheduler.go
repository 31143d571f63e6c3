package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/jobs"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/service"
)

// DefaultRetryDelays повторы после неудачного запуска: now + 1m + 10m + 30m
var DefaultRetryDelays = []time.Duration{
	1 * time.Minute,
	10 * time.Minute,
	30 * time.Minute,
}

// Scheduler управляет запуском периодических джоб
type Scheduler struct {
	jobs           []jobs.Job
	alerterService service.IAlerterService
	retryDelays    []time.Duration
	log            *slog.Logger
}

// NewScheduler создаёт новый планировщик джоб. alerterService может быть nil
func NewScheduler(log *slog.Logger, alerterService service.IAlerterService, retryDelays []time.Duration) *Scheduler {
	if retryDelays == nil {
		retryDelays = DefaultRetryDelays
	}
	return &Scheduler{
		jobs:           make([]jobs.Job, 0),
		alerterService: alerterService,
		retryDelays:    retryDelays,
		log:            log,
	}
}

// Register регистрирует джобу в планировщике
func (s *Scheduler) Register(job jobs.Job) {
	s.jobs = append(s.jobs, job)
	s.log.Debug("job registered", "job_name", job.Name(), "total_jobs", len(s.jobs))
}

// Start запускает все джобы и блокирует до отмены ctx
func (s *Scheduler) Start(ctx context.Context) error {
	if len(s.jobs) == 0 {
		s.log.Warn("no jobs registered, scheduler not started")
		return nil
	}

	s.log.Info("starting job scheduler", "jobs_count", len(s.jobs))

	var wg sync.WaitGroup
	for _, job := range s.jobs {
		wg.Add(1)
		go func(job jobs.Job) {
			defer wg.Done()
			s.runJob(ctx, job)
		}(job)
	}

	wg.Wait()
	s.log.Info("job scheduler stopped")
	return nil
}

// runJob запускает отдельную джобу в цикле
func (s *Scheduler) runJob(ctx context.Context, job jobs.Job) {
	jobName := job.Name()

	for {
		now := time.Now()
		timer := time.NewTimer(job.NextRun(now).Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info("job stopped by context", "job_name", jobName)
			return
		case <-timer.C:
			attemptErrors, err := s.executeJobWithRetry(ctx, job)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				s.log.Error("job failed after all retries",
					"job_name", jobName,
					"error", err,
					"attempts", len(attemptErrors),
				)
				s.sendAlert(ctx, jobName, attemptErrors)
			} else {
				s.log.Debug("job executed successfully", "job_name", jobName)
			}
		}
	}
}

// jobAttemptError ошибка конкретной попытки выполнения джобы
type jobAttemptError struct {
	attempt int
	err     error
}

// executeJobWithRetry возвращает ошибки всех попыток и финальную ошибку (nil при успехе)
func (s *Scheduler) executeJobWithRetry(ctx context.Context, job jobs.Job) ([]jobAttemptError, error) {
	jobName := job.Name()
	var attemptErrors []jobAttemptError

	for attempt := 1; attempt <= len(s.retryDelays)+1; attempt++ {
		if attempt > 1 {
			timer := time.NewTimer(s.retryDelays[attempt-2])
			select {
			case <-ctx.Done():
				timer.Stop()
				return attemptErrors, ctx.Err()
			case <-timer.C:
			}
		}

		err := job.Run(ctx)
		if err == nil {
			return nil, nil
		}

		attemptErrors = append(attemptErrors, jobAttemptError{attempt: attempt, err: err})
		s.log.Warn("job execution failed",
			"job_name", jobName,
			"attempt", attempt,
			"retries_remaining", len(s.retryDelays)+1-attempt,
			"error", err,
		)
	}

	return attemptErrors, fmt.Errorf("all retry attempts failed (total attempts: %d)", len(attemptErrors))
}

// sendAlert алертит на финальную ошибку после ретраев
func (s *Scheduler) sendAlert(ctx context.Context, jobName string, attemptErrors []jobAttemptError) {
	if s.alerterService == nil {
		return
	}

	var message strings.Builder
	message.WriteString("⚠️ Финальная ошибка планировщика, ретраи исчерпаны\n\n")
	message.WriteString(fmt.Sprintf("Джоба: %s\n\n", jobName))
	message.WriteString("Ошибки попыток:\n")
	for _, attemptErr := range attemptErrors {
		message.WriteString(fmt.Sprintf("Попытка %d: %s\n", attemptErr.attempt, attemptErr.err.Error()))
	}

	if alertErr := s.alerterService.SendAlert(ctx, message.String()); alertErr != nil {
		s.log.Warn("failed to send job failure alert",
			"job_name", jobName,
			"error", alertErr,
		)
	}
}
