package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/makingkings/mentorship-api/internal/models"
)

// GetAdminByEmail возвращает активного администратора по email
// или ErrNotFound. Неактивные и удалённые не находятся — для входа
// это эквивалент неверных учётных данных.
func (s *Storage) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	const op = "storage.GetAdminByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, name, password_hash, role, is_active, created_at
			  FROM admins
			  WHERE email = $1 AND is_active = TRUE AND ` + notDeleted
	a := &models.Admin{}
	err := s.DB.QueryRowContext(ctx, query, email).Scan(&a.ID, &a.Email, &a.Name,
		&a.PasswordHash, &a.Role, &a.IsActive, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// CreateAdmin сохраняет административную учётную запись, используется
// при первоначальном наполнении.
func (s *Storage) CreateAdmin(ctx context.Context, admin models.Admin) (string, error) {
	const op = "storage.CreateAdmin"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	newID := uuid.New().String()
	query := `INSERT INTO admins (id, email, name, password_hash, role, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (email) DO UPDATE
			      SET name = EXCLUDED.name,
			          password_hash = EXCLUDED.password_hash,
			          role = EXCLUDED.role,
			          is_active = EXCLUDED.is_active
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		newID, admin.Email, admin.Name, admin.PasswordHash, admin.Role,
		admin.IsActive).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}
