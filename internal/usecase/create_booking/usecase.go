package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	availabilityRepo "github.com/nguyendangquyen/MAP-DRESS/internal/infra/storage/availability"
	productRepo "github.com/nguyendangquyen/MAP-DRESS/internal/infra/storage/product"
	rentalRepo "github.com/nguyendangquyen/MAP-DRESS/internal/infra/storage/rental"
	userRepo "github.com/nguyendangquyen/MAP-DRESS/internal/infra/storage/user"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/txmanager"
)

// UseCase use case бронирования товара на выбранные дни
type UseCase struct {
	productRepo      ProductRepository
	userRepo         UserRepository
	rentalRepo       RentalRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	metrics          Metrics
	policy           Policy
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	productRepo ProductRepository,
	userRepo UserRepository,
	rentalRepo RentalRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	metrics Metrics,
	policy Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		productRepo:      productRepo,
		userRepo:         userRepo,
		rentalRepo:       rentalRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		metrics:          metrics,
		policy:           policy,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case бронирования.
// Проверка занятости, создание пользователя, аренды и дней календаря выполняются
// в одной сериализуемой транзакции: либо применяется всё, либо ничего.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: product=%s, email=%s, dates=%d, payment=%s",
		req.ProductID, domain.NormalizeEmail(req.Email), len(req.SelectedDates), req.PaymentMethod)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дни без повторов по возрастанию, первый день не в прошлом
	dates := domain.UniqueDates(req.SelectedDates)
	if err := validateNotInPast(dates, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	var (
		result       *domain.Rental
		guestCreated bool
	)

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		guestCreated = false

		// 3.1. Получаем товар
		product, err := uc.productRepo.GetByID(txCtx, req.ProductID)
		if err != nil {
			if errors.Is(err, productRepo.ErrProductNotFound) {
				uc.logger.Warn("CreateBooking: product id=%s not found", req.ProductID)
				return ErrProductNotFound
			}
			uc.logger.Error("CreateBooking: failed to get product id=%s: %v", req.ProductID, err)
			return fmt.Errorf("%w: failed to get product: %v", ErrInternal, err)
		}

		if !product.IsBookable() {
			uc.logger.Warn("CreateBooking: product id=%s is %s", product.ID, product.Status)
			return ErrProductUnavailable
		}

		// 3.2. Сумма считается на сервере, клиентские значения только сверяются
		total := domain.RentalTotal(product.DailyPrice, len(dates))
		if err := validateClientTotals(req, len(dates), total, uc.policy.PriceTolerance); err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return err
		}

		// 3.3. Проверяем, что ни один выбранный день не занят (с блокировкой строк)
		calendarRows, err := uc.availabilityRepo.GetBlockedDates(txCtx, product.ID)
		if err != nil {
			return uc.storageError("get availability", err)
		}

		activeRentals, err := uc.rentalRepo.GetActiveByProduct(txCtx, product.ID)
		if err != nil {
			return uc.storageError("get active rentals", err)
		}

		if taken := domain.IntersectDates(dates, domain.BlockedDates(calendarRows, activeRentals)); len(taken) > 0 {
			uc.logger.Warn("CreateBooking: product=%s, dates already taken: %v", product.ID, taken)
			return fmt.Errorf("%w: %v", ErrDatesNotAvailable, taken)
		}

		// 3.4. Находим пользователя по email или создаем гостевого
		user, created, err := uc.resolveUser(txCtx, req)
		if err != nil {
			return err
		}
		guestCreated = created

		// 3.5. Создаем аренду
		rental := &domain.Rental{
			ID:            uuid.New(),
			ProductID:     product.ID,
			UserID:        user.ID,
			StartDate:     dates[0],
			EndDate:       dates[len(dates)-1],
			TotalDays:     len(dates),
			TotalPrice:    total,
			DepositPaid:   domain.DepositAmount(total, req.PaymentMethod, uc.policy.DepositPercent),
			Status:        domain.RentalPending,
			PaymentMethod: req.PaymentMethod,
			Notes:         req.Notes,
		}

		saved, err := uc.rentalRepo.Create(txCtx, rental)
		if err != nil {
			return uc.storageError("create rental", err)
		}

		// 3.6. Занимаем дни. Уникальность (product_id, date) - последняя линия защиты:
		// при конфликте откатывается вся транзакция, включая аренду и гостя.
		if err := uc.availabilityRepo.CreateBatch(txCtx, domain.NewRentalAvailability(saved, dates)); err != nil {
			return uc.storageError("reserve dates", err)
		}

		result = saved
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			err = fmt.Errorf("%w: %v", ErrDatesNotAvailable, err)
		}
		if errors.Is(err, ErrDatesNotAvailable) {
			uc.metrics.BookingConflict()
		}
		return nil, err
	}

	uc.metrics.BookingCreated()
	uc.logger.Info("CreateBooking: successfully created rental id=%s, user=%s, %s..%s, total=%s, deposit=%s",
		result.ID, result.UserID, result.StartDate, result.EndDate, result.TotalPrice, result.DepositPaid)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		ProductID:       result.ProductID,
		UserID:          result.UserID,
		StartDate:       result.StartDate,
		EndDate:         result.EndDate,
		BookedDates:     dates,
		TotalDays:       result.TotalDays,
		TotalPrice:      result.TotalPrice,
		DepositPaid:     result.DepositPaid,
		RemainingAmount: result.RemainingAmount(),
		Status:          string(result.Status),
		PaymentMethod:   string(result.PaymentMethod),
		Notes:           result.Notes,
		GuestCreated:    guestCreated,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// resolveUser находит пользователя по email (без учета регистра) или создает гостевого
// со случайным паролем, который никому не сообщается
func (uc *UseCase) resolveUser(ctx context.Context, req *Request) (*domain.User, bool, error) {
	email := domain.NormalizeEmail(req.Email)

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, userRepo.ErrUserNotFound) {
		return nil, false, uc.storageError("get user by email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to hash placeholder password: %v", err)
		return nil, false, fmt.Errorf("%w: failed to hash password: %v", ErrInternal, err)
	}

	name := req.CustomerName
	if name == "" {
		name = email
	}

	guest := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         domain.RoleUser,
		IsGuest:      true,
	}

	created, err := uc.userRepo.Create(ctx, guest)
	if err != nil {
		return nil, false, uc.storageError("create guest user", err)
	}

	uc.logger.Info("CreateBooking: created guest user id=%s for email=%s", created.ID, email)
	return created, true, nil
}

// storageError переводит ошибки репозиториев в ошибки use case.
// Конфликты параллельных транзакций означают, что дни заняты другим бронированием.
func (uc *UseCase) storageError(op string, err error) error {
	switch {
	case errors.Is(err, availabilityRepo.ErrDateTaken),
		errors.Is(err, availabilityRepo.ErrConcurrentUpdate),
		errors.Is(err, rentalRepo.ErrConcurrentUpdate):
		uc.logger.Warn("CreateBooking: %s: conflict: %v", op, err)
		return fmt.Errorf("%w: %v", ErrDatesNotAvailable, err)

	case errors.Is(err, userRepo.ErrEmailTaken),
		errors.Is(err, userRepo.ErrConcurrentUpdate):
		uc.logger.Warn("CreateBooking: %s: conflict: %v", op, err)
		return fmt.Errorf("%w: %v", ErrConcurrentRequest, err)

	default:
		uc.logger.Error("CreateBooking: failed to %s: %v", op, err)
		return fmt.Errorf("%w: failed to %s: %v", ErrInternal, op, err)
	}
}
