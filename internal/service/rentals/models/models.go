package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

// Request модели

// GetUserRentalsRequest запрос истории аренд пользователя
type GetUserRentalsRequest struct {
	Session domain.Session
	UserID  uuid.UUID
	Status  *string
}

// ListRentalsRequest запрос списка аренд для администратора
type ListRentalsRequest struct {
	Session   domain.Session
	ProductID *uuid.UUID
	Status    *string
	From      *types.Date
	To        *types.Date
}

// ToDomainFilter конвертирует запрос в фильтр репозитория
func (r *ListRentalsRequest) ToDomainFilter() (domain.RentalsFilter, error) {
	filter := domain.RentalsFilter{
		ProductID: r.ProductID,
		From:      r.From,
		To:        r.To,
	}

	status, err := ToDomainRentalStatus(r.Status)
	if err != nil {
		return domain.RentalsFilter{}, err
	}
	filter.Status = status

	return filter, nil
}

// ToDomainRentalStatus разбирает необязательный фильтр по статусу
func ToDomainRentalStatus(s *string) (*domain.RentalStatus, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	status, err := domain.ParseRentalStatus(*s)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// Response модели

// RentalResponse аренда в ответах API
type RentalResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"productId"`
	UserID          uuid.UUID       `json:"userId"`
	StartDate       types.Date      `json:"startDate"`
	EndDate         types.Date      `json:"endDate"`
	TotalDays       int             `json:"totalDays"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	DepositPaid     decimal.Decimal `json:"depositPaid"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"paymentMethod"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// RentalListResponse список аренд
type RentalListResponse struct {
	Rentals []*RentalResponse `json:"rentals"`
	Total   int               `json:"total"`
}

// FromDomainRental конвертирует доменную аренду в ответ
func FromDomainRental(r *domain.Rental) *RentalResponse {
	return &RentalResponse{
		ID:              r.ID,
		ProductID:       r.ProductID,
		UserID:          r.UserID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		TotalDays:       r.TotalDays,
		TotalPrice:      r.TotalPrice,
		DepositPaid:     r.DepositPaid,
		RemainingAmount: r.RemainingAmount(),
		Status:          string(r.Status),
		PaymentMethod:   string(r.PaymentMethod),
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// FromDomainRentalList конвертирует список аренд
func FromDomainRentalList(rentals []*domain.Rental) *RentalListResponse {
	items := make([]*RentalResponse, 0, len(rentals))
	for _, r := range rentals {
		items = append(items, FromDomainRental(r))
	}
	return &RentalListResponse{
		Rentals: items,
		Total:   len(items),
	}
}
