package update_rental_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	availabilityRepo "github.com/nguyendangquyen/MAP-DRESS/internal/infra/storage/availability"
	rentalRepo "github.com/nguyendangquyen/MAP-DRESS/internal/infra/storage/rental"
)

// UseCase use case смены статуса аренды администратором
type UseCase struct {
	rentalRepo       RentalRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	metrics          Metrics
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	rentalRepo RentalRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		rentalRepo:       rentalRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		metrics:          metrics,
		logger:           logger,
	}
}

// Execute меняет статус по таблице переходов.
// При переходе в RETURNED или CANCELLED дни аренды освобождаются в той же транзакции.
// Повторная установка текущего статуса ничего не меняет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateRentalStatus: rental=%s, status=%s, by user=%s", req.RentalID, req.Status, req.Session.UserID)

	// 1. Только администратор
	if !req.Session.IsAdmin() {
		uc.logger.Warn("UpdateRentalStatus: user=%s with role=%s is not admin", req.Session.UserID, req.Session.Role)
		return nil, ErrForbidden
	}

	// 2. Валидация статуса
	next, err := domain.ParseRentalStatus(req.Status)
	if err != nil {
		uc.logger.Warn("UpdateRentalStatus: %v", err)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	resp := &Response{}

	// 3. Читаем аренду с блокировкой строки и меняем статус
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		rental, err := uc.rentalRepo.GetByID(txCtx, req.RentalID)
		if err != nil {
			if errors.Is(err, rentalRepo.ErrRentalNotFound) {
				uc.logger.Warn("UpdateRentalStatus: rental id=%s not found", req.RentalID)
				return ErrRentalNotFound
			}
			return uc.storageError("get rental", err)
		}

		resp.Rental = rental
		resp.PreviousStatus = rental.Status

		if rental.Status == next {
			uc.logger.Info("UpdateRentalStatus: rental id=%s already has status=%s", rental.ID, next)
			return nil
		}

		if !rental.Status.CanTransitionTo(next) {
			uc.logger.Warn("UpdateRentalStatus: rental id=%s, transition %s -> %s is not allowed (allowed: %v)",
				rental.ID, rental.Status, next, rental.Status.AllowedTransitions())
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, rental.Status, next)
		}

		if err := uc.rentalRepo.UpdateStatus(txCtx, rental, next); err != nil {
			if errors.Is(err, rentalRepo.ErrRentalNotFound) {
				return ErrRentalNotFound
			}
			return uc.storageError("update status", err)
		}

		// 4. Терминальный статус освобождает дни календаря
		if next.IsTerminal() {
			released, err := uc.availabilityRepo.DeleteByRentalID(txCtx, rental.ID)
			if err != nil {
				return uc.storageError("release dates", err)
			}
			resp.ReleasedDates = released
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.PreviousStatus != resp.Rental.Status {
		uc.metrics.StatusTransition(string(resp.PreviousStatus), string(resp.Rental.Status))
		uc.logger.Info("UpdateRentalStatus: rental id=%s %s -> %s, released %d dates",
			resp.Rental.ID, resp.PreviousStatus, resp.Rental.Status, resp.ReleasedDates)
	}

	return resp, nil
}

func (uc *UseCase) storageError(op string, err error) error {
	if errors.Is(err, rentalRepo.ErrConcurrentUpdate) || errors.Is(err, availabilityRepo.ErrConcurrentUpdate) {
		uc.logger.Warn("UpdateRentalStatus: %s: conflict: %v", op, err)
		return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
	}
	uc.logger.Error("UpdateRentalStatus: failed to %s: %v", op, err)
	return fmt.Errorf("%w: failed to %s: %v", ErrInternal, op, err)
}
