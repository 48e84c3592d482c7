package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/makingkings/mentorship-api/internal/models"
)

// CreateSubscriptionTx создаёт подписку в рамках транзакции сверки.
// Повторная сверка той же пары (user, program) отдаётся как
// ErrAlreadySubscribed — защита от дублей при повторной доставке
// платёжного колбэка.
func (s *Storage) CreateSubscriptionTx(ctx context.Context, tx *sql.Tx, sub models.Subscription) (*models.Subscription, error) {
	const op = "storage.CreateSubscriptionTx"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM user_subscriptions
		     WHERE user_id = $1 AND program_id = $2 AND `+notDeleted+`
		 )`, sub.UserID, sub.ProgramID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return nil, ErrAlreadySubscribed
	}

	newID := uuid.New().String()
	query := `INSERT INTO user_subscriptions
			      (id, user_id, program_id, amount_paid, remaining_amount, payment_status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, user_id, program_id, amount_paid, remaining_amount,
			      payment_status, created_at`
	created := &models.Subscription{}
	if err := tx.QueryRowContext(ctx, query,
		newID, sub.UserID, sub.ProgramID, sub.AmountPaid, sub.RemainingAmount,
		sub.PaymentStatus).Scan(&created.ID, &created.UserID, &created.ProgramID,
		&created.AmountPaid, &created.RemainingAmount, &created.PaymentStatus,
		&created.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// CreatePaymentTx сохраняет платёж по подписке в рамках транзакции.
func (s *Storage) CreatePaymentTx(ctx context.Context, tx *sql.Tx, payment models.Payment) (string, error) {
	const op = "storage.CreatePaymentTx"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	newID := uuid.New().String()
	query := `INSERT INTO payments (id, subscription_id, amount, payment_method)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	if err := tx.QueryRowContext(ctx, query,
		newID, payment.SubscriptionID, payment.Amount, payment.PaymentMethod).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListSubscriptionsByUser возвращает подписки пользователя вместе
// с платежами, для админской карточки.
func (s *Storage) ListSubscriptionsByUser(ctx context.Context, userID string) ([]models.Subscription, error) {
	const op = "storage.ListSubscriptionsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, program_id, amount_paid, remaining_amount,
			      payment_status, created_at
			  FROM user_subscriptions
			  WHERE user_id = $1 AND ` + notDeleted + `
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Subscription
	for rows.Next() {
		var sub models.Subscription
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.ProgramID, &sub.AmountPaid,
			&sub.RemainingAmount, &sub.PaymentStatus, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := range result {
		payments, err := s.listPayments(ctx, result[i].ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[i].Payments = payments
	}
	return result, nil
}

func (s *Storage) listPayments(ctx context.Context, subscriptionID string) ([]models.Payment, error) {
	query := `SELECT id, subscription_id, amount, payment_method, created_at
			  FROM payments
			  WHERE subscription_id = $1
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, subscriptionID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.SubscriptionID, &p.Amount, &p.PaymentMethod,
			&p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
