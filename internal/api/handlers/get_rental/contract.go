package get_rental

import (
	"context"

	"github.com/google/uuid"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	"github.com/nguyendangquyen/MAP-DRESS/internal/service/rentals/models"
)

type RentalService interface {
	GetByID(ctx context.Context, session domain.Session, id uuid.UUID) (*models.RentalResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
