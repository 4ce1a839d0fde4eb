package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRole роль пользователя
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// User покупатель или администратор магазина
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string // хранится в нижнем регистре
	PasswordHash string
	Phone        *string
	Address      *string
	AvatarURL    *string
	Role         UserRole
	IsGuest      bool // создан при бронировании без регистрации

	CreatedAt time.Time
}

// NormalizeEmail email сравнивается без учета регистра и пробелов по краям
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
