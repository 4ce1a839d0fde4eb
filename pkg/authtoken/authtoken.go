// Package authtoken выпуск и проверка HS256 JWT с идентификатором пользователя и ролью
package authtoken

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken заголовок Authorization пуст или без токена
	ErrMissingToken = errors.New("authtoken: missing token")

	// ErrInvalidToken подпись, срок или формат токена некорректны
	ErrInvalidToken = errors.New("authtoken: invalid token")
)

// Claims полезная нагрузка токена. Subject - ID пользователя.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager подписывает и проверяет токены общим секретом
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewManager создает менеджер токенов
func NewManager(secret, issuer string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue выпускает токен для пользователя с ролью
func (m *Manager) Issue(subject, role string) (string, error) {
	now := m.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("authtoken: sign: %w", err)
	}
	return signed, nil
}

// ParseHeader проверяет значение заголовка Authorization ("Bearer <token>")
func (m *Manager) ParseHeader(header string) (*Claims, error) {
	tokenStr := strings.TrimSpace(header)
	if parts := strings.Fields(tokenStr); len(parts) > 0 && strings.EqualFold(parts[0], "bearer") {
		tokenStr = strings.TrimSpace(tokenStr[len(parts[0]):])
	}
	if tokenStr == "" {
		return nil, ErrMissingToken
	}
	return m.Parse(tokenStr)
}

// Parse проверяет подпись и срок действия токена
func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
