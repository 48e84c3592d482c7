// Package jwt реализует генерацию и парсинг JWT токенов админской сессии.
//
// AdminClaims расширяет стандартные claims, добавляя идентификатор,
// email, имя и роль администратора.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга токенов.
type Maker interface {
	// GenerateToken создает токен для администратора
	GenerateToken(adminID, email, name, role string) (string, error)
	// ParseToken возвращает *AdminClaims, если токен подписан и не истёк
	ParseToken(tokenStr string) (*AdminClaims, error)
}

// MakerImpl реализует Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов
	tokenTTL  time.Duration // Время жизни токена
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
