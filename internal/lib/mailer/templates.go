package mailer

import (
	"fmt"

	"github.com/makingkings/mentorship-api/internal/models"
)

// WelcomeMessage письмо новому участнику после регистрации.
func WelcomeMessage(user *models.User) Message {
	body := fmt.Sprintf(`Hello %s,

Welcome to the Making Kings mentorship program!

Your registration has been received. To secure your spot, please
complete the payment for your selected program.

With love,
The Making Kings Team`, user.FirstName)

	return Message{
		To:      []string{user.Email},
		Subject: "Welcome",
		Text:    body,
	}
}

// SuccessPaymentMessage поздравительное письмо после сверки платежа,
// содержит ссылку на закрытое сообщество.
func SuccessPaymentMessage(user *models.User, communityURL string) Message {
	body := fmt.Sprintf(`Congratulations %s!

Your payment has been confirmed and your membership is now PREMIUM.

Join the private community here: %s

With love,
The Making Kings Team`, user.FirstName, communityURL)

	return Message{
		To:      []string{user.Email},
		Subject: "Congratulations",
		Text:    body,
	}
}

// NotificationMessage письмо с текстом уведомления из очереди.
func NotificationMessage(n *models.Notification) Message {
	return Message{
		To:      []string{n.Email},
		Subject: "Making Kings notification",
		Text:    n.Message,
	}
}
