package jwtauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken токен не прошел проверку подписи или срока действия
	ErrInvalidToken = errors.New("jwtauth: invalid token")

	// ErrEmptySecret секрет для подписи не задан
	ErrEmptySecret = errors.New("jwtauth: secret is empty")
)

// Роли пользователей
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// Claims полезная нагрузка токена
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Manager выпускает и проверяет HS256 токены
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager создает менеджер токенов
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Generate выпускает токен для пользователя
func (m *Manager) Generate(userID, role string) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate разбирает токен и возвращает claims
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
