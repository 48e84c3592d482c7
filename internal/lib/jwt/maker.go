package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims описывает данные администратора, хранящиеся в JWT.
type AdminClaims struct {
	AdminID              string `json:"id"`    // Идентификатор администратора
	Email                string `json:"email"` // Электронная почта
	Name                 string `json:"name"`  // Имя
	Role                 string `json:"role"`  // ADMIN или SUPER_ADMIN
	jwt.RegisteredClaims        // Встроенные стандартные claims (ExpiresAt, IssuedAt и пр.)
}

// GenerateToken создает JWT с данными администратора, подписывая его
// секретным ключом. Время жизни определяется полем tokenTTL.
func (j *MakerImpl) GenerateToken(adminID, email, name, role string) (string, error) {
	claims := AdminClaims{
		AdminID: adminID,
		Email:   email,
		Name:    name,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит токен, проверяет подпись и срок действия,
// возвращает AdminClaims, если токен корректен.
func (j *MakerImpl) ParseToken(tokenStr string) (*AdminClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &AdminClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
