// Package registration содержит бизнес-логику приёма регистраций.
//
// Создание пользователя и отправка приветственного письма выполняются
// в одной транзакции: если письмо отправить не удалось, пользователь
// не создаётся (политика "нет пользователя без письма").
package registration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/makingkings/mentorship-api/internal/lib/mailer"
	"github.com/makingkings/mentorship-api/internal/lib/sl"
	"github.com/makingkings/mentorship-api/internal/models"
)

// Repository описывает методы хранилища, нужные приёму регистраций.
type Repository interface {
	BeginTx(ctx context.Context) (*sql.Tx, error)
	CreateUserTx(ctx context.Context, tx *sql.Tx, user models.User) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetProgram(ctx context.Context, id string) (*models.Program, error)
}

// RegistrationService реализует приём регистраций и повторную отправку
// приветственного письма.
type RegistrationService struct {
	repo   Repository
	sender mailer.Sender
	log    *slog.Logger
}

// NewRegistrationService создаёт новый экземпляр RegistrationService.
func NewRegistrationService(repo Repository, sender mailer.Sender, log *slog.Logger) *RegistrationService {
	return &RegistrationService{
		repo:   repo,
		sender: sender,
		log:    log,
	}
}

// Register валидирует выбранную программу, создаёт пользователя и шлёт
// приветственное письмо. Дубликат email пробрасывается как
// repository.ErrEmailTaken, недоступная программа — как ErrNotFound.
func (s *RegistrationService) Register(ctx context.Context, req models.DummyRegister) (*models.User, error) {
	const op = "registration.Register"

	if _, err := s.repo.GetProgram(ctx, req.ProgramID); err != nil {
		return nil, err
	}

	user := models.User{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneCountry + req.PhoneNumber,
		Country:     req.Country,
		City:        req.City,
		Gender:      req.Gender,
		// Поле обязательно в схеме, настоящего пароля у участника нет.
		Password:  req.Email,
		Role:      models.RoleUser,
		IsActive:  true,
		ProgramID: &req.ProgramID,
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	id, err := s.repo.CreateUserTx(ctx, tx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	if err := s.sender.Send(ctx, mailer.WelcomeMessage(&user)); err != nil {
		s.log.Error("failed to send welcome email", sl.Err(err))
		return nil, fmt.Errorf("%s: send welcome email: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("registered new user", slog.String("id", id))
	return &user, nil
}

// ResendWelcome повторно отправляет приветственное письмо
// существующему пользователю.
func (s *RegistrationService) ResendWelcome(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := s.sender.Send(ctx, mailer.WelcomeMessage(user)); err != nil {
		return nil, err
	}
	return user, nil
}
