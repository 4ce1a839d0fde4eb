package get_blocked_dates

import (
	"context"

	"github.com/google/uuid"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}

// AvailabilityRepository интерфейс репозитория календаря
type AvailabilityRepository interface {
	GetBlockedDates(ctx context.Context, productID uuid.UUID) ([]types.Date, error)
}

// RentalRepository интерфейс репозитория аренд
type RentalRepository interface {
	GetActiveByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Rental, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
