package reconcile

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/makingkings/mentorship-api/internal/lib/mailer"
	"github.com/makingkings/mentorship-api/internal/models"
	"github.com/makingkings/mentorship-api/internal/storage/repository"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Reconcile(ctx context.Context, req models.DummyReconcile) (*models.ReconcileResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReconcileResult), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func validRequest() models.DummyReconcile {
	return models.DummyReconcile{
		Email:     "ada@example.com",
		ProgramID: "11111111-1111-1111-1111-111111111111",
		Amount:    161.20,
	}
}

func TestReconcileHandler_ServeHTTP(t *testing.T) {
	result := &models.ReconcileResult{
		User:         &models.User{ID: "user-1", Role: models.RolePremium},
		Subscription: &models.Subscription{ID: "sub-1"},
	}

	tests := []struct {
		name           string
		requestBody    any
		mockResult     *models.ReconcileResult
		mockErr        error
		wantStatusCode int
		wantCode       string
	}{
		{
			name:           "successful reconciliation",
			requestBody:    validRequest(),
			mockResult:     result,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantCode:       "BAD_REQUEST",
		},
		{
			name:           "validation error - missing amount",
			requestBody:    models.DummyReconcile{Email: "ada@example.com", ProgramID: "11111111-1111-1111-1111-111111111111"},
			wantStatusCode: http.StatusBadRequest,
			wantCode:       "VALIDATION_ERROR",
		},
		{
			name:           "already subscribed",
			requestBody:    validRequest(),
			mockErr:        repository.ErrAlreadySubscribed,
			wantStatusCode: http.StatusConflict,
			wantCode:       "ALREADY_SUBSCRIBED",
		},
		{
			name:           "unknown user or program",
			requestBody:    validRequest(),
			mockErr:        repository.ErrNotFound,
			wantStatusCode: http.StatusNotFound,
			wantCode:       "NOT_FOUND",
		},
		{
			name:           "email send failure",
			requestBody:    validRequest(),
			mockErr:        mailer.ErrSendFailed,
			wantStatusCode: http.StatusBadGateway,
			wantCode:       "EMAIL_SEND_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			if tt.mockResult != nil || tt.mockErr != nil {
				serviceMock.On("Reconcile", mock.Anything, mock.Anything).
					Return(tt.mockResult, tt.mockErr).Once()
			}

			handler := New(newNoopLogger(), serviceMock)

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/send-email", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			if tt.wantCode != "" {
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantCode, got["code"])
			} else {
				assert.Equal(t, "OK", got["status"])
			}
			serviceMock.AssertExpectations(t)
		})
	}
}
