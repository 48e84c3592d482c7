// Package middlewarectx содержит HTTP middleware админской зоны:
// проверку JWT для API, страничный гейт с редиректами, CORS
// и ограничение частоты запросов.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/makingkings/mentorship-api/internal/http/response"
	"github.com/makingkings/mentorship-api/internal/lib/jwt"
	"github.com/makingkings/mentorship-api/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// AdminID — ключ для ID администратора в контексте
	AdminID Key = "admin_id"
	// AdminEmail — ключ для email администратора в контексте
	AdminEmail Key = "admin_email"
	// Role — ключ для роли администратора в контексте
	Role Key = "role"
)

// Service описывает интерфейс проверки JWT токена.
type Service interface {
	ValidateToken(ctx context.Context, token string) (*jwt.AdminClaims, error)
}

// tokenFromRequest извлекает токен из cookie либо из заголовка
// Authorization. Cookie имеет приоритет: так работает браузерная сессия
// панели, Bearer оставлен для программных клиентов.
func tokenFromRequest(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// JWTMiddleware возвращает HTTP middleware, который проверяет токен
// администратора в cookie или заголовке Authorization.
//
// Если токен валиден, добавляет ID, email и роль администратора
// в контекст запроса, иначе возвращает 401 Unauthorized.
func JWTMiddleware(authService Service, cookieName string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr := tokenFromRequest(r, cookieName)
			if tokenStr == "" {
				log.Error("missing admin token")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error(response.CodeUnauthorized, "missing admin token"))
				return
			}

			claims, err := authService.ValidateToken(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error(response.CodeUnauthorized, "invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), AdminID, claims.AdminID)
			ctx = context.WithValue(ctx, AdminEmail, claims.Email)
			ctx = context.WithValue(ctx, Role, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
