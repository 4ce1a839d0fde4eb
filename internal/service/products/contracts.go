package products

import (
	"context"

	"github.com/google/uuid"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}

// AvailabilityRepository интерфейс репозитория календаря
type AvailabilityRepository interface {
	GetBlockedDates(ctx context.Context, productID uuid.UUID) ([]types.Date, error)
	CreateBatch(ctx context.Context, rows []*domain.Availability) error
	DeleteManualBlocks(ctx context.Context, productID uuid.UUID, dates []types.Date) (int64, error)
}

// RentalRepository интерфейс репозитория аренд
type RentalRepository interface {
	GetActiveByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Rental, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
