// Package auth содержит бизнес-логику входа администратора и проверки токена.
package auth

import (
	"context"
	"errors"

	"github.com/makingkings/mentorship-api/internal/lib/jwt"
	"github.com/makingkings/mentorship-api/internal/lib/password"
	"github.com/makingkings/mentorship-api/internal/models"
	"github.com/makingkings/mentorship-api/internal/storage/repository"
)

// ErrInvalidCredentials неверная пара email/пароль либо учётная запись
// неактивна. Наружу причины не различаются.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminRepository описывает контракт для работы с администраторами в базе.
type AdminRepository interface {
	// GetAdminByEmail возвращает активного администратора или repository.ErrNotFound.
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// AuthService отвечает за вход администратора и валидацию JWT.
type AuthService struct {
	admins   AdminRepository
	jwtMaker jwt.Maker
}

// NewAuthService создаёт новый экземпляр AuthService.
func NewAuthService(admins AdminRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		admins:   admins,
		jwtMaker: jwtMaker,
	}
}

// Login проверяет пароль администратора и генерирует JWT.
// Отсутствующий администратор и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.Admin, string, error) {
	admin, err := s.admins.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := password.CompareHash(admin.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(admin.ID, admin.Email, admin.Name, admin.Role)
	if err != nil {
		return nil, "", err
	}
	return admin, token, nil
}

// ValidateToken проверяет JWT и возвращает claims, если токен корректен.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.AdminClaims, error) {
	return s.jwtMaker.ParseToken(token)
}
