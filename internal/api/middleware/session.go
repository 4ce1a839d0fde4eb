package middleware

import (
	"context"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
)

type sessionKey struct{}

// WithSession кладет проверенную сессию в контекст запроса
func WithSession(ctx context.Context, session domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSession достает сессию, положенную Auth
func GetSession(ctx context.Context) (domain.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(domain.Session)
	return session, ok
}
