package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/makingkings/mentorship-api/internal/models"
)

const userColumns = `id, email, first_name, last_name, phone_number, country,
	      city, gender, role, is_active, program_id, created_at, updated_at`

// Разрешённые колонки сортировки листинга пользователей.
var userSortColumns = map[string]string{
	"created_at": "created_at",
	"email":      "email",
	"first_name": "first_name",
	"last_name":  "last_name",
}

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var programID sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PhoneNumber,
		&u.Country, &u.City, &u.Gender, &u.Role, &u.IsActive, &programID,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if programID.Valid {
		u.ProgramID = &programID.String
	}
	return u, nil
}

// CreateUserTx сохраняет нового пользователя в рамках транзакции
// и возвращает его ID. Дубликат email отдаётся как ErrEmailTaken.
func (s *Storage) CreateUserTx(ctx context.Context, tx *sql.Tx, user models.User) (string, error) {
	const op = "storage.CreateUserTx"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, user.Email).Scan(&exists); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return "", ErrEmailTaken
	}

	newID := uuid.New().String()
	query := `INSERT INTO users (id, email, first_name, last_name, phone_number,
			      country, city, gender, password, role, is_active, program_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING id;`
	if err := tx.QueryRowContext(ctx, query,
		newID, user.Email, user.FirstName, user.LastName, user.PhoneNumber,
		user.Country, user.City, user.Gender, user.Password, user.Role,
		user.IsActive, user.ProgramID).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByEmail возвращает пользователя по email или ErrNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email = $1 AND ` + notDeleted
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по ID или ErrNotFound.
func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE id = $1 AND ` + notDeleted
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpgradeUserTx переводит пользователя на уровень PREMIUM и закрепляет
// за ним программу. Выполняется внутри транзакции сверки платежа.
func (s *Storage) UpgradeUserTx(ctx context.Context, tx *sql.Tx, userID, programID string) error {
	const op = "storage.UpgradeUserTx"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
		      SET role = $1,
			      program_id = $2,
			      updated_at = NOW()
			  WHERE id = $3 AND ` + notDeleted
	res, err := tx.ExecContext(ctx, query, models.RolePremium, programID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUsers возвращает страницу пользователей с фильтром по роли,
// поиском по email и имени и сортировкой по разрешённым колонкам,
// вместе с общим числом подходящих строк.
func (s *Storage) ListUsers(ctx context.Context, filter models.ListFilter) ([]*models.User, int, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	where := []string{notDeleted, "is_active = TRUE"}
	args := []any{}

	if filter.Role != "" && filter.Role != "ALL" {
		args = append(args, filter.Role)
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(email ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d)", n, n, n))
	}
	whereClause := strings.Join(where, " AND ")

	sortBy, ok := userSortColumns[filter.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	var totalCount int
	countQuery := `SELECT COUNT(*) FROM users WHERE ` + whereClause
	if err := s.DB.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	args = append(args, filter.Limit, filter.Offset())
	query := fmt.Sprintf(`SELECT `+userColumns+`
			  FROM users
			  WHERE %s
			  ORDER BY %s %s
			  LIMIT $%d OFFSET $%d`,
		whereClause, sortBy, sortOrder, len(args)-1, len(args))

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, totalCount, nil
}

// CountUsersByRole возвращает число активных пользователей с данной ролью.
func (s *Storage) CountUsersByRole(ctx context.Context, role string) (int, error) {
	const op = "storage.CountUsersByRole"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*) FROM users
			  WHERE role = $1 AND is_active = TRUE AND ` + notDeleted
	if err := s.DB.QueryRowContext(ctx, query, role).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListRecentUsers возвращает последних зарегистрированных пользователей.
func (s *Storage) ListRecentUsers(ctx context.Context, limit int) ([]models.User, error) {
	const op = "storage.ListRecentUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE is_active = TRUE AND ` + notDeleted + `
			  ORDER BY created_at DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
