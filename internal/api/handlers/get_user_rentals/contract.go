package get_user_rentals

import (
	"context"

	"github.com/nguyendangquyen/MAP-DRESS/internal/service/rentals/models"
)

type RentalService interface {
	GetUserRentals(ctx context.Context, req *models.GetUserRentalsRequest) (*models.RentalListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
