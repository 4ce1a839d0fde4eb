package rentals

import (
	"context"

	"github.com/google/uuid"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
)

// RentalRepository интерфейс репозитория аренд
type RentalRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Rental, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, status *domain.RentalStatus) ([]*domain.Rental, error)
	List(ctx context.Context, filter domain.RentalsFilter) ([]*domain.Rental, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AvailabilityRepository интерфейс репозитория календаря
type AvailabilityRepository interface {
	DeleteByRentalID(ctx context.Context, rentalID uuid.UUID) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
