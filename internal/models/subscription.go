package models

import "time"

// Статусы оплаты подписки.
const (
	PaymentStatusFullyPaid     = "Fully_paid"
	PaymentStatusPartiallyPaid = "Partially_paid"
	PaymentStatusNotPaid       = "Not_paid"
)

// Способы оплаты.
const (
	PaymentMethodBankTransfer = "Bank Transfer"
	PaymentMethodCash         = "Cash"
	PaymentMethodPaystack     = "Paystack"
)

// Subscription связывает пользователя с оплаченной программой.
// Создаётся ровно один раз при сверке платежа, на пару (user, program)
// действует частичный уникальный индекс.
type Subscription struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	ProgramID       string     `json:"program_id"`
	AmountPaid      float64    `json:"amount_paid"`
	RemainingAmount float64    `json:"remaining_amount"`
	PaymentStatus   string     `json:"payment_status"`
	CreatedAt       time.Time  `json:"created_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
	Payments        []Payment  `json:"payments,omitempty"` // Заполняется при выборке карточки пользователя
}

// Payment отдельный платёж по подписке, append-only.
type Payment struct {
	ID             string    `json:"id"`
	SubscriptionID string    `json:"subscription_id"`
	Amount         float64   `json:"amount"`
	PaymentMethod  string    `json:"payment_method"`
	CreatedAt      time.Time `json:"created_at"`
}

// DummyReconcile входные данные сверки платежа: платёжный виджет уже
// списал деньги на клиенте, сервер записывает результат.
// Reference — необязательная ссылка Paystack для проверки транзакции.
type DummyReconcile struct {
	Email     string  `json:"email" validate:"required,email"`
	ProgramID string  `json:"program_id" validate:"required,uuid"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Reference string  `json:"reference,omitempty" validate:"omitempty"`
}

// ReconcileResult то, что возвращает сверка: обновлённый пользователь
// и созданная подписка.
type ReconcileResult struct {
	User         *User         `json:"user"`
	Subscription *Subscription `json:"subscription"`
}
