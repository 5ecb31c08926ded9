package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// JWTClaims представляет клеймы access-токена
type JWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService отвечает за выпуск и проверку access-токенов (HS256)
type JWTService struct {
	secretKey     []byte
	tokenLifetime time.Duration
}

// NewJWTService создает новый сервис JWT
func NewJWTService(secretKey string, expirationHrs int) (*JWTService, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("jwt secret key is required")
	}
	if expirationHrs <= 0 {
		expirationHrs = 24
	}
	return &JWTService{
		secretKey:     []byte(secretKey),
		tokenLifetime: time.Duration(expirationHrs) * time.Hour,
	}, nil
}

// GenerateToken выпускает подписанный access-токен для пользователя
func (s *JWTService) GenerateToken(userID uint, email, role string) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ParseToken проверяет подпись и срок действия токена и возвращает клеймы
func (s *JWTService) ParseToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
