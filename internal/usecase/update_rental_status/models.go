package update_rental_status

import (
	"github.com/google/uuid"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
)

// Request запрос на смену статуса аренды
type Request struct {
	Session  domain.Session
	RentalID uuid.UUID
	Status   string
}

// Response аренда после смены статуса
type Response struct {
	Rental         *domain.Rental
	PreviousStatus domain.RentalStatus
	ReleasedDates  int64 // удалено строк календаря
}
