package testimony

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/makingkings/mentorship-api/internal/models"
	"github.com/makingkings/mentorship-api/internal/storage/repository"
)

// Мок для Repository
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateTestimony(ctx context.Context, req models.DummyTestimony) (*models.Testimony, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Testimony), args.Error(1)
}

func (m *RepoMock) ListTestimonies(ctx context.Context, filter models.ListFilter) ([]*models.Testimony, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Testimony), args.Int(1), args.Error(2)
}

func (m *RepoMock) ApproveTestimony(ctx context.Context, id string, approved bool) (*models.Testimony, error) {
	args := m.Called(ctx, id, approved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Testimony), args.Error(1)
}

func (m *RepoMock) CreateActivityLog(ctx context.Context, entry models.ActivityLog) (string, error) {
	args := m.Called(ctx, entry)
	return args.String(0), args.Error(1)
}

func (m *RepoMock) CreateNotification(ctx context.Context, n models.Notification) (string, error) {
	args := m.Called(ctx, n)
	return args.String(0), args.Error(1)
}

// Мок для Notifier
type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) Notify(n models.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func boolPtr(b bool) *bool { return &b }

func TestTestimonyService_Approve(t *testing.T) {
	approved := &models.Testimony{
		ID:        "test-1",
		FirstName: "Ada",
		Email:     "ada@example.com",
		Testimony: "The program changed my life",
		Approved:  boolPtr(true),
	}

	t.Run("approval logs action and notifies author", func(t *testing.T) {
		repoMock := new(RepoMock)
		notifierMock := new(NotifierMock)

		repoMock.On("ApproveTestimony", mock.Anything, "test-1", true).Return(approved, nil).Once()
		repoMock.On("CreateActivityLog", mock.Anything, mock.MatchedBy(func(l models.ActivityLog) bool {
			return l.AdminID == "admin-1" && l.Type == models.ActivityUpdate
		})).Return("log-1", nil).Once()
		repoMock.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n models.Notification) bool {
			return n.Email == "ada@example.com" && n.Type == models.NotificationUser
		})).Return("not-1", nil).Once()
		notifierMock.On("Notify", mock.MatchedBy(func(n models.Notification) bool {
			return n.Email == "ada@example.com"
		})).Return(nil).Once()

		service := NewTestimonyService(repoMock, notifierMock, newNoopLogger())
		got, err := service.Approve(context.Background(), "admin-1",
			models.DummyApproveTestimony{ID: "test-1", Approved: boolPtr(true)})

		require.NoError(t, err)
		assert.True(t, *got.Approved)
		repoMock.AssertExpectations(t)
		notifierMock.AssertExpectations(t)
	})

	t.Run("anonymous testimony skips notification", func(t *testing.T) {
		anonymous := &models.Testimony{ID: "test-2", FirstName: "Guest", Approved: boolPtr(false)}
		repoMock := new(RepoMock)
		notifierMock := new(NotifierMock)

		repoMock.On("ApproveTestimony", mock.Anything, "test-2", false).Return(anonymous, nil).Once()
		repoMock.On("CreateActivityLog", mock.Anything, mock.Anything).Return("log-1", nil).Once()

		service := NewTestimonyService(repoMock, notifierMock, newNoopLogger())
		_, err := service.Approve(context.Background(), "admin-1",
			models.DummyApproveTestimony{ID: "test-2", Approved: boolPtr(false)})

		require.NoError(t, err)
		repoMock.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
		notifierMock.AssertNotCalled(t, "Notify", mock.Anything)
	})

	t.Run("unknown testimony", func(t *testing.T) {
		repoMock := new(RepoMock)
		repoMock.On("ApproveTestimony", mock.Anything, "missing", true).
			Return(nil, repository.ErrNotFound).Once()

		service := NewTestimonyService(repoMock, new(NotifierMock), newNoopLogger())
		_, err := service.Approve(context.Background(), "admin-1",
			models.DummyApproveTestimony{ID: "missing", Approved: boolPtr(true)})

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("notification failure does not fail moderation", func(t *testing.T) {
		repoMock := new(RepoMock)
		notifierMock := new(NotifierMock)

		repoMock.On("ApproveTestimony", mock.Anything, "test-1", true).Return(approved, nil).Once()
		repoMock.On("CreateActivityLog", mock.Anything, mock.Anything).Return("log-1", nil).Once()
		repoMock.On("CreateNotification", mock.Anything, mock.Anything).Return("not-1", nil).Once()
		notifierMock.On("Notify", mock.Anything).Return(errors.New("broker down")).Once()

		service := NewTestimonyService(repoMock, notifierMock, newNoopLogger())
		_, err := service.Approve(context.Background(), "admin-1",
			models.DummyApproveTestimony{ID: "test-1", Approved: boolPtr(true)})

		assert.NoError(t, err)
	})
}

func TestTestimonyService_List(t *testing.T) {
	repoMock := new(RepoMock)
	items := []*models.Testimony{{ID: "test-1"}, {ID: "test-2"}}
	filter := models.ListFilter{Page: 1, Limit: 10}
	repoMock.On("ListTestimonies", mock.Anything, filter).Return(items, 12, nil).Once()

	service := NewTestimonyService(repoMock, new(NotifierMock), newNoopLogger())
	got, pagination, err := service.List(context.Background(), filter)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 12, pagination.TotalCount)
	assert.Equal(t, 2, pagination.TotalPages)
	assert.True(t, pagination.HasNextPage)
}
