package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus статус товара в каталоге
type ProductStatus string

const (
	ProductAvailable   ProductStatus = "available"
	ProductRented      ProductStatus = "rented"
	ProductMaintenance ProductStatus = "maintenance"
)

// IsValid известный статус товара
func (s ProductStatus) IsValid() bool {
	return s == ProductAvailable || s == ProductRented || s == ProductMaintenance
}

// Product платье или костюм из каталога
type Product struct {
	ID          uuid.UUID
	Name        string
	Description *string
	DailyPrice  decimal.Decimal
	Stock       int
	Status      ProductStatus
	CategoryID  *uuid.UUID
	Images      []string
	Colors      []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable товар можно бронировать (не на обслуживании).
// Статус "rented" относится к текущему дню и не мешает бронировать будущие даты.
func (p *Product) IsBookable() bool {
	return p.Status != ProductMaintenance
}
