package rentals

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	rentalRepo "github.com/nguyendangquyen/MAP-DRESS/internal/infra/storage/rental"
	"github.com/nguyendangquyen/MAP-DRESS/internal/service/rentals/models"
)

// Service сервис чтения и очистки истории аренд
type Service struct {
	rentalRepo       RentalRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса аренд
func NewService(
	rentalRepo RentalRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		rentalRepo:       rentalRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetByID получает аренду по ID.
// Владелец видит свою аренду, администратор любую.
func (s *Service) GetByID(ctx context.Context, session domain.Session, id uuid.UUID) (*models.RentalResponse, error) {
	s.logger.Info("GetByID: fetching rental id=%s for user=%s", id, session.UserID)

	rental, err := s.getRental(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !session.CanAccessUser(rental.UserID) {
		s.logger.Warn("GetByID: access denied for user=%s to rental id=%s", session.UserID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched rental id=%s", id)
	return models.FromDomainRental(rental), nil
}

// GetUserRentals история аренд пользователя, новые первыми.
// Опционально фильтрует по статусу.
func (s *Service) GetUserRentals(ctx context.Context, req *models.GetUserRentalsRequest) (*models.RentalListResponse, error) {
	s.logger.Info("GetUserRentals: fetching rentals for user=%s, status=%v", req.UserID, req.Status)

	if !req.Session.CanAccessUser(req.UserID) {
		s.logger.Warn("GetUserRentals: access denied for user=%s to rentals of user=%s", req.Session.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	status, err := models.ToDomainRentalStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetUserRentals: invalid status=%v for user=%s", *req.Status, req.UserID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	rentals, err := s.rentalRepo.GetByUserID(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("GetUserRentals: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserRentals - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserRentals: successfully fetched %d rentals for user=%s", len(rentals), req.UserID)
	return models.FromDomainRentalList(rentals), nil
}

// List все аренды для администратора с фильтрацией по товару, статусу и периоду
func (s *Service) List(ctx context.Context, req *models.ListRentalsRequest) (*models.RentalListResponse, error) {
	logMsg := fmt.Sprintf("List: fetching rentals by user=%s", req.Session.UserID)
	if req.ProductID != nil {
		logMsg += fmt.Sprintf(", product=%s", *req.ProductID)
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.From != nil || req.To != nil {
		logMsg += fmt.Sprintf(", period=%v to %v", req.From, req.To)
	}
	s.logger.Info("%s", logMsg)

	if !req.Session.IsAdmin() {
		s.logger.Warn("List: user=%s is not admin", req.Session.UserID)
		return nil, ErrAccessDenied
	}

	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		s.logger.Warn("List: invalid period %s to %s", req.From, req.To)
		return nil, fmt.Errorf("%w: 'to' is before 'from'", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	var rentals []*domain.Rental
	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		rentals, err = s.rentalRepo.List(txCtx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d rentals", len(rentals))
	return models.FromDomainRentalList(rentals), nil
}

// Delete удаляет завершенную аренду (RETURNED или CANCELLED) вместе с её днями календаря.
// Доступно только администратору.
func (s *Service) Delete(ctx context.Context, session domain.Session, id uuid.UUID) error {
	s.logger.Info("Delete: deleting rental id=%s by user=%s", id, session.UserID)

	if !session.IsAdmin() {
		s.logger.Warn("Delete: user=%s is not admin", session.UserID)
		return ErrAccessDenied
	}

	var released int64
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		rental, err := s.getRental(txCtx, "Delete", id)
		if err != nil {
			return err
		}

		if !rental.CanBeDeleted() {
			s.logger.Warn("Delete: rental id=%s cannot be deleted, status=%s", id, rental.Status)
			return fmt.Errorf("%w: status=%s", ErrCannotDelete, rental.Status)
		}

		released, err = s.availabilityRepo.DeleteByRentalID(txCtx, id)
		if err != nil {
			s.logger.Error("Delete: failed to delete availability of rental id=%s: %v", id, err)
			return fmt.Errorf("%w: Delete - availability error: %v", ErrInternal, err)
		}

		if err := s.rentalRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, rentalRepo.ErrRentalNotFound) {
				return ErrRentalNotFound
			}
			s.logger.Error("Delete: repository error for rental id=%s: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: successfully deleted rental id=%s, released %d dates", id, released)
	return nil
}

// Вспомогательные методы

func (s *Service) getRental(ctx context.Context, op string, id uuid.UUID) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rentalRepo.ErrRentalNotFound) {
			s.logger.Warn("%s: rental id=%s not found", op, id)
			return nil, ErrRentalNotFound
		}
		s.logger.Error("%s: repository error for rental id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return rental, nil
}
