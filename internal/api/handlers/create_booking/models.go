package create_booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	createBooking "github.com/nguyendangquyen/MAP-DRESS/internal/usecase/create_booking"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/ptr"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProductID     string           `json:"productId" validate:"required,uuid"`
	CustomerName  string           `json:"customerName" validate:"max=255"`
	Email         string           `json:"email" validate:"required,email"`
	Phone         *string          `json:"phone,omitempty" validate:"omitempty,max=32"`
	SelectedDates []string         `json:"selectedDates" validate:"required,min=1,max=366,dive,date"` // ["2025-03-01", ...]
	TotalPrice    *decimal.Decimal `json:"totalPrice,omitempty"`
	TotalDays     int              `json:"totalDays" validate:"gte=0"`
	Notes         *string          `json:"notes,omitempty" validate:"omitempty,max=500"`
	PaymentMethod string           `json:"paymentMethod" validate:"omitempty,oneof=deposit full"`
}

// RentalResponse HTTP response model
type RentalResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"productId"`
	UserID          uuid.UUID       `json:"userId"`
	StartDate       types.Date      `json:"startDate"`
	EndDate         types.Date      `json:"endDate"`
	BookedDates     []types.Date    `json:"bookedDates"`
	TotalDays       int             `json:"totalDays"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	DepositPaid     decimal.Decimal `json:"depositPaid"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"paymentMethod"`
	Notes           string          `json:"notes"`
	GuestCreated    bool            `json:"guestCreated"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом дат)
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	productID, err := uuid.Parse(r.ProductID)
	if err != nil {
		return nil, err
	}

	dates := make([]types.Date, 0, len(r.SelectedDates))
	for _, s := range r.SelectedDates {
		d, err := types.ParseDate(s)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}

	var phone *string
	if p := ptr.Deref(r.Phone); p != "" {
		phone = ptr.Ptr(p)
	}

	return &createBooking.Request{
		ProductID:     productID,
		CustomerName:  r.CustomerName,
		Email:         r.Email,
		Phone:         phone,
		SelectedDates: dates,
		TotalPrice:    r.TotalPrice,
		TotalDays:     r.TotalDays,
		Notes:         r.Notes,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *RentalResponse {
	return &RentalResponse{
		ID:              resp.ID,
		ProductID:       resp.ProductID,
		UserID:          resp.UserID,
		StartDate:       resp.StartDate,
		EndDate:         resp.EndDate,
		BookedDates:     resp.BookedDates,
		TotalDays:       resp.TotalDays,
		TotalPrice:      resp.TotalPrice,
		DepositPaid:     resp.DepositPaid,
		RemainingAmount: resp.RemainingAmount,
		Status:          resp.Status,
		PaymentMethod:   resp.PaymentMethod,
		Notes:           ptr.Deref(resp.Notes),
		GuestCreated:    resp.GuestCreated,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
