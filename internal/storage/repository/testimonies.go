package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/makingkings/mentorship-api/internal/models"
)

const testimonyColumns = `id, first_name, last_name, email, phone_number,
	      country, city, testimony, approved, created_at`

func scanTestimony(row interface{ Scan(...any) error }) (*models.Testimony, error) {
	t := &models.Testimony{}
	var approved sql.NullBool
	if err := row.Scan(&t.ID, &t.FirstName, &t.LastName, &t.Email, &t.PhoneNumber,
		&t.Country, &t.City, &t.Testimony, &approved, &t.CreatedAt); err != nil {
		return nil, err
	}
	if approved.Valid {
		t.Approved = &approved.Bool
	}
	return t, nil
}

// CreateTestimony сохраняет свидетельство из публичной формы,
// флаг одобрения остаётся пустым (на модерации).
func (s *Storage) CreateTestimony(ctx context.Context, req models.DummyTestimony) (*models.Testimony, error) {
	const op = "storage.CreateTestimony"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	newID := uuid.New().String()
	query := `INSERT INTO testimonies
			      (id, first_name, last_name, email, phone_number, country, city, testimony)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + testimonyColumns
	t, err := scanTestimony(s.DB.QueryRowContext(ctx, query,
		newID, req.FirstName, req.LastName, req.Email, req.PhoneNumber,
		req.Country, req.City, req.Testimony))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// ListTestimonies возвращает страницу свидетельств с поиском по email,
// имени и тексту, вместе с общим числом подходящих строк.
func (s *Storage) ListTestimonies(ctx context.Context, filter models.ListFilter) ([]*models.Testimony, int, error) {
	const op = "storage.ListTestimonies"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	where := []string{notDeleted}
	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(email ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d OR testimony ILIKE $%d)",
			n, n, n, n))
	}
	whereClause := strings.Join(where, " AND ")

	var totalCount int
	countQuery := `SELECT COUNT(*) FROM testimonies WHERE ` + whereClause
	if err := s.DB.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	args = append(args, filter.Limit, filter.Offset())
	query := fmt.Sprintf(`SELECT `+testimonyColumns+`
			  FROM testimonies
			  WHERE %s
			  ORDER BY created_at DESC
			  LIMIT $%d OFFSET $%d`,
		whereClause, len(args)-1, len(args))

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Testimony
	for rows.Next() {
		t, err := scanTestimony(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, t)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, totalCount, nil
}

// ApproveTestimony перезаписывает флаг одобрения свидетельства.
func (s *Storage) ApproveTestimony(ctx context.Context, id string, approved bool) (*models.Testimony, error) {
	const op = "storage.ApproveTestimony"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE testimonies
			  SET approved = $1
			  WHERE id = $2 AND ` + notDeleted + `
			  RETURNING ` + testimonyColumns
	t, err := scanTestimony(s.DB.QueryRowContext(ctx, query, approved, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// CountTestimonies возвращает число неудалённых свидетельств.
func (s *Storage) CountTestimonies(ctx context.Context) (int, error) {
	const op = "storage.CountTestimonies"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*) FROM testimonies WHERE ` + notDeleted
	if err := s.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListRecentTestimonies возвращает последние свидетельства.
func (s *Storage) ListRecentTestimonies(ctx context.Context, limit int) ([]models.Testimony, error) {
	const op = "storage.ListRecentTestimonies"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + testimonyColumns + `
			  FROM testimonies
			  WHERE ` + notDeleted + `
			  ORDER BY created_at DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Testimony
	for rows.Next() {
		t, err := scanTestimony(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
