// Package directory содержит бизнес-логику админских справочников:
// листинг пользователей, карточка с подписками, журнал действий
// и агрегаты панели.
package directory

import (
	"context"
	"log/slog"
	"time"

	"github.com/makingkings/mentorship-api/internal/cache"
	"github.com/makingkings/mentorship-api/internal/lib/sl"
	"github.com/makingkings/mentorship-api/internal/models"
)

// statsCacheKey ключ кеша агрегатов панели.
const statsCacheKey = "dashboard:stats"

// statsCacheTTL короткое время жизни агрегатов: панель терпит
// минутное отставание, база не дёргается на каждом обновлении.
const statsCacheTTL = time.Minute

// recentLimit сколько последних записей показывает панель.
const recentLimit = 3

// Repository описывает методы хранилища, нужные справочникам.
type Repository interface {
	ListUsers(ctx context.Context, filter models.ListFilter) ([]*models.User, int, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListSubscriptionsByUser(ctx context.Context, userID string) ([]models.Subscription, error)
	ListActivityLogs(ctx context.Context, filter models.ListFilter) ([]*models.ActivityLog, int, error)
	CountUsersByRole(ctx context.Context, role string) (int, error)
	CountPrograms(ctx context.Context) (int, error)
	CountTestimonies(ctx context.Context) (int, error)
	ListRecentUsers(ctx context.Context, limit int) ([]models.User, error)
	ListRecentTestimonies(ctx context.Context, limit int) ([]models.Testimony, error)
}

// DirectoryService реализует чтение справочников админской панели.
type DirectoryService struct {
	repo  Repository
	cache *cache.Cache
	log   *slog.Logger
}

// NewDirectoryService создаёт новый экземпляр DirectoryService.
func NewDirectoryService(repo Repository, cache *cache.Cache, log *slog.Logger) *DirectoryService {
	return &DirectoryService{repo: repo, cache: cache, log: log}
}

// ListUsers возвращает страницу пользователей с фильтром по роли,
// поиском и сортировкой.
func (s *DirectoryService) ListUsers(ctx context.Context, filter models.ListFilter) ([]*models.User, *models.Pagination, error) {
	users, totalCount, err := s.repo.ListUsers(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	p := models.NewPagination(filter.Page, filter.Limit, totalCount)
	return users, &p, nil
}

// GetUserDetails возвращает карточку пользователя с подписками
// и вложенными платежами.
func (s *DirectoryService) GetUserDetails(ctx context.Context, id string) (*models.UserDetails, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	subs, err := s.repo.ListSubscriptionsByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &models.UserDetails{User: *user, Subscriptions: subs}, nil
}

// ListActivity возвращает страницу журнала действий администраторов.
func (s *DirectoryService) ListActivity(ctx context.Context, filter models.ListFilter) ([]*models.ActivityLog, *models.Pagination, error) {
	logs, totalCount, err := s.repo.ListActivityLogs(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	p := models.NewPagination(filter.Page, filter.Limit, totalCount)
	return logs, &p, nil
}

// DashboardStats собирает агрегаты панели: счётчики по ролям, программам
// и свидетельствам плюс последние записи. Результат кешируется.
func (s *DirectoryService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var cached models.DashboardStats
	if hit, err := s.cache.Get(statsCacheKey, &cached); err != nil {
		s.log.Warn("failed to read stats cache", sl.Err(err))
	} else if hit {
		return &cached, nil
	}

	var stats models.DashboardStats
	var err error
	if stats.Counts.PremiumUsers, err = s.repo.CountUsersByRole(ctx, models.RolePremium); err != nil {
		return nil, err
	}
	if stats.Counts.FreeUsers, err = s.repo.CountUsersByRole(ctx, models.RoleUser); err != nil {
		return nil, err
	}
	if stats.Counts.Programs, err = s.repo.CountPrograms(ctx); err != nil {
		return nil, err
	}
	if stats.Counts.Testimonies, err = s.repo.CountTestimonies(ctx); err != nil {
		return nil, err
	}
	if stats.Recent.Users, err = s.repo.ListRecentUsers(ctx, recentLimit); err != nil {
		return nil, err
	}
	if stats.Recent.Testimonies, err = s.repo.ListRecentTestimonies(ctx, recentLimit); err != nil {
		return nil, err
	}

	if err := s.cache.Set(statsCacheKey, stats, statsCacheTTL); err != nil {
		s.log.Warn("failed to write stats cache", sl.Err(err))
	}
	return &stats, nil
}
