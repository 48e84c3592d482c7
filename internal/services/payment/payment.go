// Package payment содержит бизнес-логику сверки платежа: платёжный
// виджет уже списал деньги на клиенте, сервер записывает подписку,
// платёж, повышает уровень пользователя и шлёт поздравительное письмо.
//
// Все записи и письмо скованы одной транзакцией: сбой отправки письма
// откатывает подписку, платёж и смену роли. Для ручного повтора письма
// существует отдельная операция resend.
package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/makingkings/mentorship-api/internal/lib/mailer"
	"github.com/makingkings/mentorship-api/internal/lib/sl"
	"github.com/makingkings/mentorship-api/internal/models"
	"github.com/makingkings/mentorship-api/internal/paystack"
)

// ErrPaymentNotVerified проверка ссылки Paystack не подтвердила платёж.
var ErrPaymentNotVerified = errors.New("payment reference not verified")

// Repository описывает методы хранилища, нужные сверке платежа.
type Repository interface {
	BeginTx(ctx context.Context) (*sql.Tx, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetProgram(ctx context.Context, id string) (*models.Program, error)
	CreateSubscriptionTx(ctx context.Context, tx *sql.Tx, sub models.Subscription) (*models.Subscription, error)
	CreatePaymentTx(ctx context.Context, tx *sql.Tx, payment models.Payment) (string, error)
	UpgradeUserTx(ctx context.Context, tx *sql.Tx, userID, programID string) error
}

// Verifier описывает проверку транзакции по ссылке платёжного шлюза.
type Verifier interface {
	Enabled() bool
	VerifyTransaction(ctx context.Context, reference string) (*paystack.VerifyResponse, error)
}

// PaymentService реализует сверку платежа.
type PaymentService struct {
	repo         Repository
	sender       mailer.Sender
	verifier     Verifier
	communityURL string
	log          *slog.Logger
}

// NewPaymentService создаёт новый экземпляр PaymentService.
func NewPaymentService(repo Repository, sender mailer.Sender, verifier Verifier, communityURL string, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:         repo,
		sender:       sender,
		verifier:     verifier,
		communityURL: communityURL,
		log:          log,
	}
}

// Reconcile записывает результат клиентского платежа.
//
// Поток предполагает единовременную полную оплату: remaining_amount = 0,
// payment_status = Fully_paid, способ оплаты — банковский перевод.
// Повторный вызов для той же пары (user, program) возвращает
// repository.ErrAlreadySubscribed и ничего не пишет.
func (s *PaymentService) Reconcile(ctx context.Context, req models.DummyReconcile) (*models.ReconcileResult, error) {
	const op = "payment.Reconcile"

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	program, err := s.repo.GetProgram(ctx, req.ProgramID)
	if err != nil {
		return nil, err
	}

	if req.Reference != "" && s.verifier.Enabled() {
		verify, err := s.verifier.VerifyTransaction(ctx, req.Reference)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !verify.Succeeded() {
			return nil, ErrPaymentNotVerified
		}
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	sub, err := s.repo.CreateSubscriptionTx(ctx, tx, models.Subscription{
		UserID:          user.ID,
		ProgramID:       program.ID,
		AmountPaid:      req.Amount,
		RemainingAmount: 0,
		PaymentStatus:   models.PaymentStatusFullyPaid,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.CreatePaymentTx(ctx, tx, models.Payment{
		SubscriptionID: sub.ID,
		Amount:         req.Amount,
		PaymentMethod:  models.PaymentMethodBankTransfer,
	}); err != nil {
		return nil, err
	}

	if err := s.repo.UpgradeUserTx(ctx, tx, user.ID, program.ID); err != nil {
		return nil, err
	}
	user.Role = models.RolePremium
	user.ProgramID = &program.ID

	if err := s.sender.Send(ctx, mailer.SuccessPaymentMessage(user, s.communityURL)); err != nil {
		s.log.Error("failed to send congratulation email", sl.Err(err))
		return nil, fmt.Errorf("%s: send congratulation email: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("reconciled payment",
		slog.String("user_id", user.ID),
		slog.String("program_id", program.ID),
		slog.Float64("amount", req.Amount))

	return &models.ReconcileResult{User: user, Subscription: sub}, nil
}
