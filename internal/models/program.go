package models

import "time"

// Program менторская программа из каталога. Price хранится в долларах,
// LocalPrice — производная строка в найрах, считается на лету и в базе
// не хранится.
type Program struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"` // Уникально среди неудалённых программ
	Features   string     `json:"features"`
	Duration   string     `json:"duration"`
	Price      float64    `json:"price"`
	LocalPrice string     `json:"local_price,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// DummyCreateProgram входные данные на создание программы.
type DummyCreateProgram struct {
	Name     string  `json:"name" validate:"required,min=2"`
	Features string  `json:"features" validate:"required"`
	Duration string  `json:"duration" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
}

// DummyUpdateProgram входные данные на частичное обновление программы.
// Пустые поля не трогаются.
type DummyUpdateProgram struct {
	ID       string  `json:"id" validate:"required,uuid"`
	Name     string  `json:"name" validate:"omitempty,min=2"`
	Features string  `json:"features" validate:"omitempty"`
	Duration string  `json:"duration" validate:"omitempty"`
	Price    float64 `json:"price" validate:"omitempty,gt=0"`
}
