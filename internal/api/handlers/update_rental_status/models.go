package update_rental_status

import (
	"github.com/nguyendangquyen/MAP-DRESS/internal/service/rentals/models"
	updateRentalStatus "github.com/nguyendangquyen/MAP-DRESS/internal/usecase/update_rental_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // PENDING | CONFIRMED | ACTIVE | RETURNED | CANCELLED
}

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	*models.RentalResponse
	PreviousStatus string `json:"previousStatus"`
	ReleasedDates  int64  `json:"releasedDates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateRentalStatus.Response) *UpdateStatusResponse {
	return &UpdateStatusResponse{
		RentalResponse: models.FromDomainRental(resp.Rental),
		PreviousStatus: string(resp.PreviousStatus),
		ReleasedDates:  resp.ReleasedDates,
	}
}
