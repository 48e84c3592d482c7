package models

import "time"

// Testimony свидетельство участника, отправленное через публичную форму.
// Approved == nil означает "на модерации".
type Testimony struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name,omitempty"`
	Email       string     `json:"email,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	Country     string     `json:"country,omitempty"`
	City        string     `json:"city,omitempty"`
	Testimony   string     `json:"testimony"`
	Approved    *bool      `json:"approved"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// DummyTestimony входные данные публичной формы свидетельства.
type DummyTestimony struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name,omitempty" validate:"omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number,omitempty" validate:"omitempty"`
	Country     string `json:"country,omitempty" validate:"omitempty"`
	City        string `json:"city,omitempty" validate:"omitempty"`
	Testimony   string `json:"testimony" validate:"required"`
}

// DummyApproveTestimony входные данные модерации: прямая перезапись флага.
type DummyApproveTestimony struct {
	ID       string `json:"id" validate:"required,uuid"`
	Approved *bool  `json:"approved" validate:"required"`
}
