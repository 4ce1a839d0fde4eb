package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/nguyendangquyen/MAP-DRESS/internal/api/handlers"
	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
)

// Auth требует валидный Bearer-токен и кладет domain.Session в контекст.
// Без токена или с невалидным токеном отвечает 401.
func Auth(verifier TokenVerifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := verifier.ParseHeader(r.Header.Get("Authorization"))
			if err != nil {
				logger.Warn("%s %s - Unauthorized: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w)
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				logger.Warn("%s %s - Unauthorized: invalid subject %q", r.Method, r.URL.Path, claims.Subject)
				handlers.RespondUnauthorized(w)
				return
			}

			role := domain.UserRole(claims.Role)
			if role != domain.RoleAdmin {
				role = domain.RoleUser
			}

			ctx := WithSession(r.Context(), domain.Session{UserID: userID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
