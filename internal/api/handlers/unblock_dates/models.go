package unblock_dates

import (
	"github.com/google/uuid"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	"github.com/nguyendangquyen/MAP-DRESS/internal/service/products/models"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

// DatesRequest HTTP request model
type DatesRequest struct {
	Dates []string `json:"dates" validate:"required,min=1,max=366,dive,date"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *DatesRequest) ToServiceRequest(session domain.Session, productID uuid.UUID) (*models.DatesRequest, error) {
	dates := make([]types.Date, 0, len(r.Dates))
	for _, s := range r.Dates {
		d, err := types.ParseDate(s)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return &models.DatesRequest{
		Session:   session,
		ProductID: productID,
		Dates:     dates,
	}, nil
}
