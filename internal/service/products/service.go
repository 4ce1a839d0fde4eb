package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	availabilityRepo "github.com/nguyendangquyen/MAP-DRESS/internal/infra/storage/availability"
	productRepo "github.com/nguyendangquyen/MAP-DRESS/internal/infra/storage/product"
	"github.com/nguyendangquyen/MAP-DRESS/internal/service/products/models"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/txmanager"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

// Service сервис каталога и ручной блокировки дней
type Service struct {
	productRepo      ProductRepository
	availabilityRepo AvailabilityRepository
	rentalRepo       RentalRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса товаров
func NewService(
	productRepo ProductRepository,
	availabilityRepo AvailabilityRepository,
	rentalRepo RentalRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		productRepo:      productRepo,
		availabilityRepo: availabilityRepo,
		rentalRepo:       rentalRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetByID получает товар по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.ProductResponse, error) {
	s.logger.Info("GetByID: fetching product id=%s", id)

	product, err := s.getProduct(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainProduct(product), nil
}

// Create создает товар. Доступно только администратору.
func (s *Service) Create(ctx context.Context, req *models.CreateProductRequest) (*models.ProductResponse, error) {
	s.logger.Info("Create: creating product name=%q by user=%s", req.Name, req.Session.UserID)

	if !req.Session.IsAdmin() {
		s.logger.Warn("Create: user=%s is not admin", req.Session.UserID)
		return nil, ErrAccessDenied
	}

	product := req.ToDomain()
	if err := validateProduct(product); err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, err
	}

	created, err := s.productRepo.Create(ctx, product)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created product id=%s", created.ID)
	return models.FromDomainProduct(created), nil
}

// BlockDates вручную блокирует дни товара (примерка, ремонт, личное использование).
// Если хотя бы один день уже занят, не блокируется ни один.
func (s *Service) BlockDates(ctx context.Context, req *models.DatesRequest) (*models.DatesResponse, error) {
	s.logger.Info("BlockDates: product=%s, %d dates by user=%s", req.ProductID, len(req.Dates), req.Session.UserID)

	dates, err := s.checkDatesRequest("BlockDates", req)
	if err != nil {
		return nil, err
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := s.getProduct(txCtx, "BlockDates", req.ProductID); err != nil {
			return err
		}

		rows, err := s.availabilityRepo.GetBlockedDates(txCtx, req.ProductID)
		if err != nil {
			return s.storageError("BlockDates", err)
		}
		rentals, err := s.rentalRepo.GetActiveByProduct(txCtx, req.ProductID)
		if err != nil {
			return s.storageError("BlockDates", err)
		}

		if taken := domain.IntersectDates(dates, domain.BlockedDates(rows, rentals)); len(taken) > 0 {
			s.logger.Warn("BlockDates: product=%s, dates already taken: %v", req.ProductID, taken)
			return fmt.Errorf("%w: %v", ErrDatesTaken, taken)
		}

		if err := s.availabilityRepo.CreateBatch(txCtx, domain.NewManualBlocks(req.ProductID, dates)); err != nil {
			return s.storageError("BlockDates", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			return nil, fmt.Errorf("%w: %v", ErrDatesTaken, err)
		}
		return nil, err
	}

	s.logger.Info("BlockDates: successfully blocked %d dates of product=%s", len(dates), req.ProductID)
	return &models.DatesResponse{
		ProductID: req.ProductID,
		Dates:     dates,
		Affected:  int64(len(dates)),
	}, nil
}

// UnblockDates снимает ручные блокировки. Дни аренд не затрагиваются.
func (s *Service) UnblockDates(ctx context.Context, req *models.DatesRequest) (*models.DatesResponse, error) {
	s.logger.Info("UnblockDates: product=%s, %d dates by user=%s", req.ProductID, len(req.Dates), req.Session.UserID)

	dates, err := s.checkDatesRequest("UnblockDates", req)
	if err != nil {
		return nil, err
	}

	var removed int64
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.getProduct(txCtx, "UnblockDates", req.ProductID); err != nil {
			return err
		}

		var err error
		removed, err = s.availabilityRepo.DeleteManualBlocks(txCtx, req.ProductID, dates)
		if err != nil {
			return s.storageError("UnblockDates", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UnblockDates: removed %d of %d blocks of product=%s", removed, len(dates), req.ProductID)
	return &models.DatesResponse{
		ProductID: req.ProductID,
		Dates:     dates,
		Affected:  removed,
	}, nil
}

// Вспомогательные методы

func (s *Service) checkDatesRequest(op string, req *models.DatesRequest) ([]types.Date, error) {
	if !req.Session.IsAdmin() {
		s.logger.Warn("%s: user=%s is not admin", op, req.Session.UserID)
		return nil, ErrAccessDenied
	}
	if len(req.Dates) == 0 || len(req.Dates) > domain.MaxSelectedDates {
		s.logger.Warn("%s: invalid number of dates: %d", op, len(req.Dates))
		return nil, fmt.Errorf("%w: dates must contain 1..%d items", ErrInvalidInput, domain.MaxSelectedDates)
	}
	return domain.UniqueDates(req.Dates), nil
}

func (s *Service) getProduct(ctx context.Context, op string, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			s.logger.Warn("%s: product id=%s not found", op, id)
			return nil, ErrProductNotFound
		}
		s.logger.Error("%s: repository error for product id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return product, nil
}

func (s *Service) storageError(op string, err error) error {
	if errors.Is(err, availabilityRepo.ErrDateTaken) || errors.Is(err, availabilityRepo.ErrConcurrentUpdate) {
		s.logger.Warn("%s: conflict: %v", op, err)
		return fmt.Errorf("%w: %v", ErrDatesTaken, err)
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func validateProduct(p *domain.Product) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case p.DailyPrice.IsNegative():
		return fmt.Errorf("%w: dailyPrice must not be negative", ErrInvalidInput)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	case !p.Status.IsValid():
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, p.Status)
	}
	return nil
}
