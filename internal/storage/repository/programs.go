package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/makingkings/mentorship-api/internal/models"
)

const programColumns = `id, name, features, duration, price, created_at, updated_at`

func scanProgram(row interface{ Scan(...any) error }) (*models.Program, error) {
	p := &models.Program{}
	if err := row.Scan(&p.ID, &p.Name, &p.Features, &p.Duration, &p.Price,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPrograms возвращает все неудалённые программы. Каталог мал,
// пагинация не нужна.
func (s *Storage) ListPrograms(ctx context.Context) ([]*models.Program, error) {
	const op = "storage.ListPrograms"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + programColumns + `
			  FROM programs
			  WHERE ` + notDeleted + `
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetProgram возвращает программу по ID или ErrNotFound.
func (s *Storage) GetProgram(ctx context.Context, id string) (*models.Program, error) {
	const op = "storage.GetProgram"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + programColumns + `
			  FROM programs
			  WHERE id = $1 AND ` + notDeleted
	p, err := scanProgram(s.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// programNameExists проверяет занятость имени среди неудалённых программ,
// кроме программы excludeID (пустая строка — без исключений).
func (s *Storage) programNameExists(ctx context.Context, name, excludeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (
			      SELECT 1 FROM programs
			      WHERE lower(name) = lower($1) AND id <> $2 AND ` + notDeleted + `
			  )`
	if err := s.DB.QueryRowContext(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CreateProgram сохраняет новую программу. Занятое имя отдаётся как
// ErrNameTaken (конфликт на уровне домена, 409 в обработчике).
func (s *Storage) CreateProgram(ctx context.Context, program models.Program) (*models.Program, error) {
	const op = "storage.CreateProgram"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	taken, err := s.programNameExists(ctx, program.Name, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		return nil, ErrNameTaken
	}

	newID := uuid.New().String()
	query := `INSERT INTO programs (id, name, features, duration, price)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + programColumns
	p, err := scanProgram(s.DB.QueryRowContext(ctx, query,
		newID, program.Name, program.Features, program.Duration, program.Price))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// UpdateProgram обновляет заполненные поля программы. Уникальность имени
// перепроверяется только когда имя действительно меняется.
func (s *Storage) UpdateProgram(ctx context.Context, upd models.DummyUpdateProgram) (*models.Program, error) {
	const op = "storage.UpdateProgram"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	current, err := s.GetProgram(ctx, upd.ID)
	if err != nil {
		return nil, err
	}

	if upd.Name != "" && !strings.EqualFold(upd.Name, current.Name) {
		taken, err := s.programNameExists(ctx, upd.Name, upd.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if taken {
			return nil, ErrNameTaken
		}
		current.Name = upd.Name
	}
	if upd.Features != "" {
		current.Features = upd.Features
	}
	if upd.Duration != "" {
		current.Duration = upd.Duration
	}
	if upd.Price > 0 {
		current.Price = upd.Price
	}

	query := `UPDATE programs
			  SET name = $1, features = $2, duration = $3, price = $4, updated_at = NOW()
			  WHERE id = $5 AND ` + notDeleted + `
			  RETURNING ` + programColumns
	p, err := scanProgram(s.DB.QueryRowContext(ctx, query,
		current.Name, current.Features, current.Duration, current.Price, upd.ID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// SoftDeleteProgram помечает программу удалённой. Физически строка
// не удаляется никогда.
func (s *Storage) SoftDeleteProgram(ctx context.Context, id string) error {
	const op = "storage.SoftDeleteProgram"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE programs
			  SET deleted_at = NOW()
			  WHERE id = $1 AND ` + notDeleted
	res, err := s.DB.ExecContext(ctx, query, id)
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

// CountPrograms возвращает число неудалённых программ.
func (s *Storage) CountPrograms(ctx context.Context) (int, error) {
	const op = "storage.CountPrograms"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*) FROM programs WHERE ` + notDeleted
	if err := s.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
