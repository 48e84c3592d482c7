// Package sender разбирает очередь уведомлений и превращает каждое
// сообщение в письмо. Живёт в отдельном бинаре, чтобы сбои почтового
// провайдера не трогали API.
package sender

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/makingkings/mentorship-api/internal/lib/mailer"
	"github.com/makingkings/mentorship-api/internal/lib/sl"
	"github.com/makingkings/mentorship-api/internal/models"
)

// SenderService обрабатывает уведомления из очереди.
type SenderService struct {
	sender mailer.Sender
	log    *slog.Logger
}

// NewSenderService создаёт новый экземпляр SenderService.
func NewSenderService(sender mailer.Sender, log *slog.Logger) *SenderService {
	return &SenderService{sender: sender, log: log}
}

// Handle разбирает тело сообщения очереди и отправляет письмо.
// Ошибка возвращает сообщение в очередь на повтор, поэтому
// уведомления без адреса подтверждаются без отправки.
func (s *SenderService) Handle(body []byte) error {
	const op = "sender.Handle"

	var n models.Notification
	if err := json.Unmarshal(body, &n); err != nil {
		s.log.Error("failed to decode notification", sl.Err(err))
		return nil
	}
	if n.Email == "" {
		s.log.Warn("notification without email, skipping",
			slog.String("type", n.Type))
		return nil
	}

	if err := s.sender.Send(context.Background(), mailer.NotificationMessage(&n)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("notification email sent",
		slog.String("email", n.Email),
		slog.String("type", n.Type))
	return nil
}
