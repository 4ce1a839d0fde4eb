package get_blocked_dates

import (
	"github.com/google/uuid"

	getBlockedDates "github.com/nguyendangquyen/MAP-DRESS/internal/usecase/get_blocked_dates"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

// BlockedDatesResponse HTTP response model
type BlockedDatesResponse struct {
	ProductID    uuid.UUID    `json:"productId"`
	BlockedDates []types.Date `json:"blockedDates"`
}

// parseOptionalDate разбирает необязательный query-параметр даты
func parseOptionalDate(s string) (*types.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := types.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getBlockedDates.Response) *BlockedDatesResponse {
	blocked := resp.BlockedDates
	if blocked == nil {
		blocked = []types.Date{}
	}
	return &BlockedDatesResponse{
		ProductID:    resp.ProductID,
		BlockedDates: blocked,
	}
}
