package domain

import "github.com/google/uuid"

// Session проверенная личность вызывающего.
// Передается явно в сервисы и use cases, глобального состояния нет.
type Session struct {
	UserID uuid.UUID
	Role   UserRole
}

// IsAdmin вызывающий - администратор
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// CanAccessUser вызывающий может видеть данные пользователя userID
func (s Session) CanAccessUser(userID uuid.UUID) bool {
	return s.IsAdmin() || s.UserID == userID
}
