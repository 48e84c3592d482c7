package models

import "time"

// Роли администратора.
const (
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// Типы записей журнала действий.
const (
	ActivityCreate = "CREATE"
	ActivityRead   = "READ"
	ActivityUpdate = "UPDATE"
	ActivityDelete = "DELETE"
)

// Admin учётная запись администратора. В отличие от User хранит
// настоящий bcrypt-хэш пароля.
type Admin struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// DummyLogin входные данные формы входа администратора.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ActivityLog запись журнала действий администратора, append-only.
type ActivityLog struct {
	ID         string    `json:"id"`
	AdminID    string    `json:"admin_id"`
	AdminEmail string    `json:"admin_email,omitempty"` // Подтягивается join-ом в листинге
	Action     string    `json:"action"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"created_at"`
}

// Типы уведомлений.
const (
	NotificationSystem = "SYSTEM"
	NotificationUser   = "USER"
)

// Notification уведомление пользователю, создаётся как побочный эффект
// админских действий и разбирается отправителем из очереди.
type Notification struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"user_id,omitempty"`
	Email     string    `json:"email,omitempty"` // Адрес доставки для отправителя
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}
