package get_product

import (
	"context"

	"github.com/google/uuid"

	"github.com/nguyendangquyen/MAP-DRESS/internal/service/products/models"
)

type ProductService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProductResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
