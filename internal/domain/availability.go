package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

// Availability занятый день товара: ручная блокировка или день аренды.
// На пару (ProductID, Date) допускается не больше одной записи.
type Availability struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Date      types.Date
	IsBlocked bool       // ручная блокировка администратором
	RentalID  *uuid.UUID // аренда, которой принадлежит день

	CreatedAt time.Time
}

// IsManualBlock запись создана администратором, а не бронированием
func (a *Availability) IsManualBlock() bool {
	return a.IsBlocked && a.RentalID == nil
}

// NewRentalAvailability строки календаря для дней аренды
func NewRentalAvailability(rental *Rental, dates []types.Date) []*Availability {
	rows := make([]*Availability, 0, len(dates))
	for _, d := range dates {
		rentalID := rental.ID
		rows = append(rows, &Availability{
			ID:        uuid.New(),
			ProductID: rental.ProductID,
			Date:      d,
			RentalID:  &rentalID,
		})
	}
	return rows
}

// NewManualBlocks строки ручной блокировки дат
func NewManualBlocks(productID uuid.UUID, dates []types.Date) []*Availability {
	rows := make([]*Availability, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, &Availability{
			ID:        uuid.New(),
			ProductID: productID,
			Date:      d,
			IsBlocked: true,
		})
	}
	return rows
}
