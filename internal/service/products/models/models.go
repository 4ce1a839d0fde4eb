package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

// Request модели

// CreateProductRequest запрос на создание товара
type CreateProductRequest struct {
	Session     domain.Session
	Name        string
	Description *string
	DailyPrice  decimal.Decimal
	Stock       int
	Status      string
	CategoryID  *uuid.UUID
	Images      []string
	Colors      []string
}

// ToDomain конвертирует запрос в доменный товар
func (r *CreateProductRequest) ToDomain() *domain.Product {
	status := domain.ProductStatus(r.Status)
	if status == "" {
		status = domain.ProductAvailable
	}
	return &domain.Product{
		ID:          uuid.New(),
		Name:        r.Name,
		Description: r.Description,
		DailyPrice:  r.DailyPrice,
		Stock:       r.Stock,
		Status:      status,
		CategoryID:  r.CategoryID,
		Images:      nonNil(r.Images),
		Colors:      nonNil(r.Colors),
	}
}

// DatesRequest запрос на блокировку или разблокировку дней товара
type DatesRequest struct {
	Session   domain.Session
	ProductID uuid.UUID
	Dates     []types.Date
}

// Response модели

// ProductResponse товар в ответах API
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	DailyPrice  decimal.Decimal `json:"dailyPrice"`
	Stock       int             `json:"stock"`
	Status      string          `json:"status"`
	CategoryID  *uuid.UUID      `json:"categoryId,omitempty"`
	Images      []string        `json:"images"`
	Colors      []string        `json:"colors"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// DatesResponse результат блокировки или разблокировки
type DatesResponse struct {
	ProductID uuid.UUID    `json:"productId"`
	Dates     []types.Date `json:"dates"`
	Affected  int64        `json:"affected"`
}

// FromDomainProduct конвертирует доменный товар в ответ
func FromDomainProduct(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		DailyPrice:  p.DailyPrice,
		Stock:       p.Stock,
		Status:      string(p.Status),
		CategoryID:  p.CategoryID,
		Images:      nonNil(p.Images),
		Colors:      nonNil(p.Colors),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
