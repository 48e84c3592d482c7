// Package testimony содержит бизнес-логику свидетельств: публичная
// подача попадает на модерацию, решение модератора пишется в журнал
// действий, а автору с email отправляется уведомление через очередь.
package testimony

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/makingkings/mentorship-api/internal/lib/sl"
	"github.com/makingkings/mentorship-api/internal/models"
)

// Repository описывает методы хранилища, нужные свидетельствам.
type Repository interface {
	CreateTestimony(ctx context.Context, req models.DummyTestimony) (*models.Testimony, error)
	ListTestimonies(ctx context.Context, filter models.ListFilter) ([]*models.Testimony, int, error)
	ApproveTestimony(ctx context.Context, id string, approved bool) (*models.Testimony, error)
	CreateActivityLog(ctx context.Context, entry models.ActivityLog) (string, error)
	CreateNotification(ctx context.Context, n models.Notification) (string, error)
}

// Notifier публикует уведомление в очередь отправителя.
type Notifier interface {
	Notify(n models.Notification) error
}

// TestimonyService реализует подачу и модерацию свидетельств.
type TestimonyService struct {
	repo     Repository
	notifier Notifier
	log      *slog.Logger
}

// NewTestimonyService создаёт новый экземпляр TestimonyService.
func NewTestimonyService(repo Repository, notifier Notifier, log *slog.Logger) *TestimonyService {
	return &TestimonyService{repo: repo, notifier: notifier, log: log}
}

// Create сохраняет свидетельство из публичной формы. Запись попадает
// на модерацию, наружу отдаётся только после одобрения.
func (s *TestimonyService) Create(ctx context.Context, req models.DummyTestimony) (*models.Testimony, error) {
	return s.repo.CreateTestimony(ctx, req)
}

// List возвращает страницу свидетельств для админской панели.
func (s *TestimonyService) List(ctx context.Context, filter models.ListFilter) ([]*models.Testimony, *models.Pagination, error) {
	items, totalCount, err := s.repo.ListTestimonies(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	p := models.NewPagination(filter.Page, filter.Limit, totalCount)
	return items, &p, nil
}

// Approve перезаписывает флаг одобрения, пишет действие в журнал
// и уведомляет автора, если у свидетельства есть email. Сбои журнала
// и уведомления не откатывают решение модератора.
func (s *TestimonyService) Approve(ctx context.Context, adminID string, req models.DummyApproveTestimony) (*models.Testimony, error) {
	t, err := s.repo.ApproveTestimony(ctx, req.ID, *req.Approved)
	if err != nil {
		return nil, err
	}

	verb := "Rejected"
	if *req.Approved {
		verb = "Approved"
	}
	if _, err := s.repo.CreateActivityLog(ctx, models.ActivityLog{
		AdminID: adminID,
		Action:  fmt.Sprintf("%s testimony from %s", verb, t.FirstName),
		Type:    models.ActivityUpdate,
	}); err != nil {
		s.log.Error("failed to write activity log", sl.Err(err))
	}

	if t.Email != "" {
		n := models.Notification{
			Email:   t.Email,
			Message: fmt.Sprintf("Hi %s, your testimony has been reviewed. Thank you for sharing your story!", t.FirstName),
			Type:    models.NotificationUser,
		}
		if _, err := s.repo.CreateNotification(ctx, n); err != nil {
			s.log.Error("failed to store notification", sl.Err(err))
		}
		if err := s.notifier.Notify(n); err != nil {
			s.log.Error("failed to publish notification", sl.Err(err))
		}
	}

	return t, nil
}
