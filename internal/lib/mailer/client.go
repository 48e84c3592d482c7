// Package mailer реализует клиент транзакционной почты поверх HTTP API
// провайдера (совместимого с Resend): письмо отправляется одним
// POST-запросом с bearer-авторизацией.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrSendFailed провайдер не принял письмо. Обработчики отличают этот
// случай от прочих внутренних ошибок.
var ErrSendFailed = errors.New("email send failed")

// Sender описывает интерфейс отправки письма, используется сервисами
// и подменяется моком в тестах.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message одно исходящее письмо.
type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// Client клиент почтового API.
type Client struct {
	apiURL     string
	apiKey     string
	from       string
	httpClient *http.Client
}

// NewClient создаёт новый клиент почтового провайдера.
func NewClient(apiURL, apiKey, from string) *Client {
	return &Client{
		apiURL:     apiURL,
		apiKey:     apiKey,
		from:       from,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// From возвращает адрес отправителя по умолчанию.
func (c *Client) From() string {
	return c.from
}

// Send отправляет письмо. Пустой From заменяется адресом по умолчанию.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if msg.From == "" {
		msg.From = c.from
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(msg); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/emails", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%w: unexpected status %s", ErrSendFailed, resp.Status)
	}
	return nil
}
