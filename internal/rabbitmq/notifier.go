package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/makingkings/mentorship-api/internal/models"
)

// Publisher публикует уведомления пользователям в exchange notifications.
type Publisher struct {
	ch *amqp.Channel
}

// NewPublisher создаёт Publisher поверх открытого канала.
func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

// Notify отправляет уведомление в очередь отправителя писем.
func (p *Publisher) Notify(n models.Notification) error {
	return PublishMessage(p.ch, NotificationExchange, "user", n)
}
