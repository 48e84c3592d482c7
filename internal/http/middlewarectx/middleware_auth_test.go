package middlewarectx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/makingkings/mentorship-api/internal/config"
	"github.com/makingkings/mentorship-api/internal/lib/jwt"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*jwt.AdminClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.AdminClaims), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

const cookieName = "admin-token"

func TestJWTMiddleware(t *testing.T) {
	claims := &jwt.AdminClaims{AdminID: "admin-1", Email: "admin@example.com", Role: "SUPER_ADMIN"}

	tests := []struct {
		name           string
		setupRequest   func(r *http.Request)
		setupMocks     func(m *AuthServiceMock)
		wantStatusCode int
		wantNextCalled bool
	}{
		{
			name: "valid cookie token",
			setupRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: cookieName, Value: "tok"})
			},
			setupMocks: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "tok").Return(claims, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantNextCalled: true,
		},
		{
			name: "valid bearer token",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer tok")
			},
			setupMocks: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "tok").Return(claims, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:           "missing token",
			setupRequest:   func(*http.Request) {},
			setupMocks:     func(*AuthServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "invalid token",
			setupRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: cookieName, Value: "bad"})
			},
			setupMocks: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "bad").
					Return(nil, errors.New("invalid token")).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(AuthServiceMock)
			tt.setupMocks(serviceMock)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				// Проверяем, что claims попали в контекст
				assert.Equal(t, "admin-1", r.Context().Value(AdminID))
				assert.Equal(t, "admin@example.com", r.Context().Value(AdminEmail))
				assert.Equal(t, "SUPER_ADMIN", r.Context().Value(Role))
				w.WriteHeader(http.StatusOK)
			})

			handler := JWTMiddleware(serviceMock, cookieName, newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			tt.setupRequest(req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
			serviceMock.AssertExpectations(t)
		})
	}
}

func TestAdminGateMiddleware(t *testing.T) {
	claims := &jwt.AdminClaims{AdminID: "admin-1"}

	tests := []struct {
		name           string
		path           string
		withToken      bool
		tokenValid     bool
		wantStatusCode int
		wantLocation   string
	}{
		{
			name:           "protected page without token redirects to login",
			path:           "/admin/dashboard",
			wantStatusCode: http.StatusTemporaryRedirect,
			wantLocation:   "/admin/login?callbackUrl=%2Fadmin%2Fdashboard",
		},
		{
			name:           "protected page with invalid token redirects to login",
			path:           "/admin/premium-users",
			withToken:      true,
			tokenValid:     false,
			wantStatusCode: http.StatusTemporaryRedirect,
			wantLocation:   "/admin/login?callbackUrl=%2Fadmin%2Fpremium-users",
		},
		{
			name:           "protected page with valid token passes through",
			path:           "/admin/programs",
			withToken:      true,
			tokenValid:     true,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "login page with valid token redirects to dashboard",
			path:           "/admin/login",
			withToken:      true,
			tokenValid:     true,
			wantStatusCode: http.StatusTemporaryRedirect,
			wantLocation:   "/admin/dashboard",
		},
		{
			name:           "login page without token passes through",
			path:           "/admin/login",
			wantStatusCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(AuthServiceMock)
			if tt.withToken {
				if tt.tokenValid {
					serviceMock.On("ValidateToken", mock.Anything, "tok").Return(claims, nil).Once()
				} else {
					serviceMock.On("ValidateToken", mock.Anything, "tok").
						Return(nil, errors.New("expired")).Once()
				}
			}

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			handler := AdminGateMiddleware(serviceMock, cookieName)(next)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.withToken {
				req.AddCookie(&http.Cookie{Name: cookieName, Value: "tok"})
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
			serviceMock.AssertExpectations(t)
		})
	}
}

func TestCORSAndRateLimit(t *testing.T) {
	t.Run("preflight answered with fixed headers", func(t *testing.T) {
		cfg := config.CORS{
			AllowedOrigin:  "https://www.makingkingsfornations.com",
			AllowedMethods: "GET, POST, PUT, DELETE, OPTIONS",
			AllowedHeaders: "Content-Type, Authorization",
		}
		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		handler := CORSMiddleware(cfg)(next)

		req := httptest.NewRequest(http.MethodOptions, "/api/register", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, cfg.AllowedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, cfg.AllowedMethods, rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, cfg.AllowedHeaders, rec.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("rate limit rejects burst overflow", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		handler := RateLimitMiddleware(1, 2, newNoopLogger())(next)

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodPost, "/api/register", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			codes = append(codes, rec.Code)
		}

		assert.Equal(t, http.StatusOK, codes[0])
		assert.Equal(t, http.StatusOK, codes[1])
		assert.Equal(t, http.StatusTooManyRequests, codes[2])
	})
}
