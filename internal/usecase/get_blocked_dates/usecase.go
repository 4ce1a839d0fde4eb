package get_blocked_dates

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	productRepo "github.com/nguyendangquyen/MAP-DRESS/internal/infra/storage/product"
)

// UseCase use case получения занятых дней товара
type UseCase struct {
	productRepo      ProductRepository
	availabilityRepo AvailabilityRepository
	rentalRepo       RentalRepository
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	productRepo ProductRepository,
	availabilityRepo AvailabilityRepository,
	rentalRepo RentalRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		productRepo:      productRepo,
		availabilityRepo: availabilityRepo,
		rentalRepo:       rentalRepo,
		logger:           logger,
	}
}

// Execute возвращает дни, которые нельзя выбрать в календаре товара:
// ручные блокировки, записи календаря активных аренд и все дни диапазонов
// аренд в статусах PENDING, CONFIRMED, ACTIVE.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetBlockedDates: product=%s", req.ProductID)

	// 1. Валидация окна
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		uc.logger.Warn("GetBlockedDates: invalid window %s..%s", req.From, req.To)
		return nil, fmt.Errorf("%w: 'to' is before 'from'", ErrInvalidInput)
	}

	// 2. Проверяем, что товар существует
	if _, err := uc.productRepo.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			uc.logger.Warn("GetBlockedDates: product id=%s not found", req.ProductID)
			return nil, ErrProductNotFound
		}
		uc.logger.Error("GetBlockedDates: failed to get product id=%s: %v", req.ProductID, err)
		return nil, fmt.Errorf("%w: failed to get product: %v", ErrInternal, err)
	}

	// 3. Занятые дни календаря
	rows, err := uc.availabilityRepo.GetBlockedDates(ctx, req.ProductID)
	if err != nil {
		uc.logger.Error("GetBlockedDates: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	// 4. Активные аренды товара
	rentals, err := uc.rentalRepo.GetActiveByProduct(ctx, req.ProductID)
	if err != nil {
		uc.logger.Error("GetBlockedDates: failed to get rentals: %v", err)
		return nil, fmt.Errorf("%w: failed to get rentals: %v", ErrInternal, err)
	}

	// 5. Объединение, сортировка, окно
	blocked := domain.FilterWindow(domain.BlockedDates(rows, rentals), req.From, req.To)

	uc.logger.Info("GetBlockedDates: product=%s, %d blocked dates (%d calendar rows, %d active rentals)",
		req.ProductID, len(blocked), len(rows), len(rentals))

	return &Response{
		ProductID:    req.ProductID,
		BlockedDates: blocked,
	}, nil
}
