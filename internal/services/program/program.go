// Package program содержит бизнес-логику каталога менторских программ:
// публичное чтение с кешированием и админские операции записи с записью
// в журнал действий.
package program

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/makingkings/mentorship-api/internal/cache"
	"github.com/makingkings/mentorship-api/internal/lib/sl"
	"github.com/makingkings/mentorship-api/internal/models"
)

// catalogCacheKey ключ кеша для полного списка программ.
const catalogCacheKey = "programs:catalog"

// catalogCacheTTL время жизни кеша каталога. Каталог меняется редко,
// любая запись инвалидирует ключ сразу.
const catalogCacheTTL = 10 * time.Minute

// Repository описывает методы хранилища, нужные каталогу.
type Repository interface {
	ListPrograms(ctx context.Context) ([]*models.Program, error)
	GetProgram(ctx context.Context, id string) (*models.Program, error)
	CreateProgram(ctx context.Context, program models.Program) (*models.Program, error)
	UpdateProgram(ctx context.Context, upd models.DummyUpdateProgram) (*models.Program, error)
	SoftDeleteProgram(ctx context.Context, id string) error
	CreateActivityLog(ctx context.Context, entry models.ActivityLog) (string, error)
}

// ProgramService реализует операции каталога программ.
type ProgramService struct {
	repo  Repository
	cache *cache.Cache
	log   *slog.Logger
}

// NewProgramService создаёт новый экземпляр ProgramService.
func NewProgramService(repo Repository, cache *cache.Cache, log *slog.Logger) *ProgramService {
	return &ProgramService{repo: repo, cache: cache, log: log}
}

// List возвращает все программы каталога с локальной ценой.
// Недоступность кеша не фатальна, просто идём в базу.
func (s *ProgramService) List(ctx context.Context) ([]*models.Program, error) {
	var cached []*models.Program
	if hit, err := s.cache.Get(catalogCacheKey, &cached); err != nil {
		s.log.Warn("failed to read programs cache", sl.Err(err))
	} else if hit {
		return cached, nil
	}

	programs, err := s.repo.ListPrograms(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range programs {
		p.LocalPrice = LocalPrice(p.Price)
	}

	if err := s.cache.Set(catalogCacheKey, programs, catalogCacheTTL); err != nil {
		s.log.Warn("failed to write programs cache", sl.Err(err))
	}
	return programs, nil
}

// Get возвращает программу по ID с локальной ценой.
func (s *ProgramService) Get(ctx context.Context, id string) (*models.Program, error) {
	p, err := s.repo.GetProgram(ctx, id)
	if err != nil {
		return nil, err
	}
	p.LocalPrice = LocalPrice(p.Price)
	return p, nil
}

// Create сохраняет новую программу и пишет действие администратора
// в журнал. Сбой журнала не откатывает создание.
func (s *ProgramService) Create(ctx context.Context, adminID string, req models.DummyCreateProgram) (*models.Program, error) {
	p, err := s.repo.CreateProgram(ctx, models.Program{
		Name:     req.Name,
		Features: req.Features,
		Duration: req.Duration,
		Price:    req.Price,
	})
	if err != nil {
		return nil, err
	}
	p.LocalPrice = LocalPrice(p.Price)

	s.invalidateCatalog()
	s.logActivity(ctx, adminID, fmt.Sprintf("Created program %q", p.Name), models.ActivityCreate)
	return p, nil
}

// Update обновляет заполненные поля программы.
func (s *ProgramService) Update(ctx context.Context, adminID string, req models.DummyUpdateProgram) (*models.Program, error) {
	p, err := s.repo.UpdateProgram(ctx, req)
	if err != nil {
		return nil, err
	}
	p.LocalPrice = LocalPrice(p.Price)

	s.invalidateCatalog()
	s.logActivity(ctx, adminID, fmt.Sprintf("Updated program %q", p.Name), models.ActivityUpdate)
	return p, nil
}

// Remove мягко удаляет программу. Исторические подписки сохраняют
// ссылку на удалённую программу.
func (s *ProgramService) Remove(ctx context.Context, adminID, id string) error {
	if err := s.repo.SoftDeleteProgram(ctx, id); err != nil {
		return err
	}

	s.invalidateCatalog()
	s.logActivity(ctx, adminID, fmt.Sprintf("Deleted program %s", id), models.ActivityDelete)
	return nil
}

func (s *ProgramService) invalidateCatalog() {
	if err := s.cache.Invalidate(catalogCacheKey); err != nil {
		s.log.Warn("failed to invalidate programs cache", sl.Err(err))
	}
}

func (s *ProgramService) logActivity(ctx context.Context, adminID, action, actType string) {
	if _, err := s.repo.CreateActivityLog(ctx, models.ActivityLog{
		AdminID: adminID,
		Action:  action,
		Type:    actType,
	}); err != nil {
		s.log.Error("failed to write activity log", sl.Err(err))
	}
}
