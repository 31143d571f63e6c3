package alerter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/service"
)

const defaultDedupWindow = 5 * time.Minute

type alertClient interface {
	SendAlert(ctx context.Context, message string) error
}

// Service реализует IAlerterService: добавляет заголовок с именем приложения
// и подавляет одинаковые алерты в пределах окна, чтобы не заспамить чат при массовом сбое
type Service struct {
	client alertClient
	app    string
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	sent map[string]time.Time
}

func New(client alertClient, app string) *Service {
	return &Service{
		client: client,
		app:    app,
		window: defaultDedupWindow,
		now:    time.Now,
		sent:   make(map[string]time.Time),
	}
}

var _ service.IAlerterService = (*Service)(nil)

// SendAlert отправляет алерт, повтор того же текста внутри окна молча пропускается
func (s *Service) SendAlert(ctx context.Context, message string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("alerter client is not initialized")
	}

	if !s.reserve(message) {
		return nil
	}

	if err := s.client.SendAlert(ctx, fmt.Sprintf("🚨 %s\n\n%s", s.app, message)); err != nil {
		s.release(message)
		return err
	}
	return nil
}

func (s *Service) reserve(message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for msg, at := range s.sent {
		if now.Sub(at) >= s.window {
			delete(s.sent, msg)
		}
	}

	if _, ok := s.sent[message]; ok {
		return false
	}
	s.sent[message] = now
	return true
}

func (s *Service) release(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sent, message)
}
