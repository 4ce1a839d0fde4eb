package update_rental_status

import (
	"context"

	updateRentalStatus "github.com/nguyendangquyen/MAP-DRESS/internal/usecase/update_rental_status"
)

type UpdateRentalStatusUseCase interface {
	Execute(ctx context.Context, req *updateRentalStatus.Request) (*updateRentalStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
