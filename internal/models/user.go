package models

import "time"

// Роли пользователя. USER — бесплатный уровень, PREMIUM выставляется
// после успешной сверки платежа.
const (
	RoleUser    = "USER"
	RolePremium = "PREMIUM"
)

// User представляет участника программы, созданного при регистрации.
// Поле Password — заглушка (при регистрации равно email), настоящим
// секретом не является.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"` // Уникально среди всех пользователей
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	PhoneNumber string     `json:"phone_number"`
	Country     string     `json:"country"`
	City        string     `json:"city"`
	Gender      string     `json:"gender"`
	Password    string     `json:"-"` // Заглушка, наружу не отдаётся
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	ProgramID   *string    `json:"program_id,omitempty"` // Выбранная программа
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// DummyRegister входные данные формы регистрации.
type DummyRegister struct {
	FirstName    string `json:"firstName" validate:"required,min=2"`
	LastName     string `json:"lastName" validate:"required,min=2"`
	Email        string `json:"email" validate:"required,email"`
	PhoneCountry string `json:"phoneCountry" validate:"required"`
	PhoneNumber  string `json:"phoneNumber" validate:"required,min=10"`
	Country      string `json:"country" validate:"required"`
	City         string `json:"city" validate:"required"`
	Gender       string `json:"gender" validate:"required"`
	ProgramID    string `json:"programId" validate:"required,uuid"`
}

// UserDetails пользователь вместе с вложенными подписками и платежами,
// отдаётся в админской карточке.
type UserDetails struct {
	User          User           `json:"user"`
	Subscriptions []Subscription `json:"subscriptions"`
}
