package get_blocked_dates

import (
	"github.com/google/uuid"

	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

// Request модель запроса занятых дней товара
type Request struct {
	ProductID uuid.UUID   // ID товара
	From      *types.Date // Начало окна календаря (опционально)
	To        *types.Date // Конец окна календаря (опционально)
}

// Response отсортированный список занятых дней без повторов
type Response struct {
	ProductID    uuid.UUID
	BlockedDates []types.Date
}
