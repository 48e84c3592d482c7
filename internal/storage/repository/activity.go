package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/makingkings/mentorship-api/internal/models"
)

// CreateActivityLog добавляет запись журнала действий администратора.
// Журнал append-only, записи не редактируются и не удаляются.
func (s *Storage) CreateActivityLog(ctx context.Context, entry models.ActivityLog) (string, error) {
	const op = "storage.CreateActivityLog"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	newID := uuid.New().String()
	query := `INSERT INTO activity_logs (id, admin_id, action, type)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		newID, entry.AdminID, entry.Action, entry.Type).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListActivityLogs возвращает страницу журнала с email администратора
// и общим числом записей.
func (s *Storage) ListActivityLogs(ctx context.Context, filter models.ListFilter) ([]*models.ActivityLog, int, error) {
	const op = "storage.ListActivityLogs"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var totalCount int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM activity_logs`).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT l.id, l.admin_id, a.email, l.action, l.type, l.created_at
			  FROM activity_logs l
			  JOIN admins a ON a.id = l.admin_id
			  ORDER BY l.created_at DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, filter.Limit, filter.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ActivityLog
	for rows.Next() {
		var l models.ActivityLog
		if err := rows.Scan(&l.ID, &l.AdminID, &l.AdminEmail, &l.Action, &l.Type,
			&l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &l)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, totalCount, nil
}

// CreateNotification сохраняет уведомление пользователю.
func (s *Storage) CreateNotification(ctx context.Context, n models.Notification) (string, error) {
	const op = "storage.CreateNotification"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	newID := uuid.New().String()
	query := `INSERT INTO notifications (id, user_id, message, type)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		newID, n.UserID, n.Message, n.Type).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}
