// Package repository реализует хранилище данных на основе PostgreSQL
// для программ, пользователей, подписок, платежей, свидетельств,
// администраторов и журналов действий. Мягкое удаление применяется
// единообразно: все выборки слоя исключают строки с deleted_at,
// отдельные обработчики этим не занимаются.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища, по которым сервисы отличают доменные
// конфликты от инфраструктурных сбоев.
var (
	// ErrNotFound строка отсутствует или мягко удалена.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken пользователь с таким email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNameTaken программа с таким именем уже существует.
	ErrNameTaken = errors.New("program name already taken")
	// ErrAlreadySubscribed на пару (user, program) уже есть подписка.
	ErrAlreadySubscribed = errors.New("subscription already exists")
)

// Условие мягкого удаления, подставляется в каждую выборку слоя.
const notDeleted = "deleted_at IS NULL"

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// BeginTx открывает транзакцию. Методы с суффиксом Tx выполняются
// в её рамках, фиксация и откат остаются на вызывающем сервисе.
func (s *Storage) BeginTx(ctx context.Context) (*sql.Tx, error) {
	const op = "storage.BeginTx"
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tx, nil
}
