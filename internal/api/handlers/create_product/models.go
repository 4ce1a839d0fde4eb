package create_product

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	"github.com/nguyendangquyen/MAP-DRESS/internal/service/products/models"
)

// CreateProductRequest HTTP request model
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Description *string         `json:"description,omitempty"`
	DailyPrice  decimal.Decimal `json:"dailyPrice"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Status      string          `json:"status" validate:"omitempty,oneof=available rented maintenance"`
	CategoryID  *uuid.UUID      `json:"categoryId,omitempty"`
	Images      []string        `json:"images" validate:"omitempty,dive,url"`
	Colors      []string        `json:"colors" validate:"omitempty,dive,required"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateProductRequest) ToServiceRequest(session domain.Session) *models.CreateProductRequest {
	return &models.CreateProductRequest{
		Session:     session,
		Name:        r.Name,
		Description: r.Description,
		DailyPrice:  r.DailyPrice,
		Stock:       r.Stock,
		Status:      r.Status,
		CategoryID:  r.CategoryID,
		Images:      r.Images,
		Colors:      r.Colors,
	}
}
