package delete_rental

import (
	"context"

	"github.com/google/uuid"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
)

type RentalService interface {
	Delete(ctx context.Context, session domain.Session, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
