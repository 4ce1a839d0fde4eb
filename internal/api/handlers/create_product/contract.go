package create_product

import (
	"context"

	"github.com/nguyendangquyen/MAP-DRESS/internal/service/products/models"
)

type ProductService interface {
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.ProductResponse, error)
}

type RequestValidator interface {
	Validate(i interface{}) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
