package rental

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/dbmetrics"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/pgerr"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/psqlbuilder"
)

var rentalColumns = []string{
	"id",
	"product_id",
	"user_id",
	"start_date",
	"end_date",
	"total_days",
	"total_price",
	"deposit_paid",
	"status",
	"payment_method",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий аренд
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория аренд
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает аренду.
// Вызывается внутри сериализуемой транзакции бронирования вместе с записью дней в availability.
func (r *Repository) Create(ctx context.Context, rental *domain.Rental) (*domain.Rental, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if rental.ID == uuid.Nil {
		rental.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("rentals").
		Columns(
			"id",
			"product_id",
			"user_id",
			"start_date",
			"end_date",
			"total_days",
			"total_price",
			"deposit_paid",
			"status",
			"payment_method",
			"notes",
		).
		Values(
			rental.ID,
			rental.ProductID,
			rental.UserID,
			rental.StartDate,
			rental.EndDate,
			rental.TotalDays,
			rental.TotalPrice,
			rental.DepositPaid,
			rental.Status,
			rental.PaymentMethod,
			rental.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rental.CreatedAt, &rental.UpdatedAt)
	if err != nil {
		return nil, execError("Create - execute insert", err)
	}

	return rental, nil
}

// GetByID получает аренду по ID.
// В транзакции строка блокируется (FOR UPDATE) для смены статуса или удаления.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Rental, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(rentalColumns...).
		From("rentals").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("GetByID - execute query", err)
	}
	defer rows.Close()

	rentals, err := r.scanRentals(rows)
	if err != nil {
		return nil, err
	}
	if len(rentals) == 0 {
		return nil, ErrRentalNotFound
	}

	return rentals[0], nil
}

// GetActiveByProduct получает аренды товара в статусах PENDING, CONFIRMED, ACTIVE.
// В транзакции строки блокируются (FOR UPDATE), чтобы параллельная смена статуса
// не освободила даты во время проверки пересечений.
func (r *Repository) GetActiveByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Rental, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(rentalColumns...).
		From("rentals").
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.Eq{"status": domain.StatusStrings(domain.ActiveRentalStatuses)}).
		OrderBy("start_date ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByProduct - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("GetActiveByProduct - execute query", err)
	}
	defer rows.Close()

	return r.scanRentals(rows)
}

// GetByUserID история аренд пользователя, сначала новые.
// Опционально фильтрует по статусу.
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID, status *domain.RentalStatus) ([]*domain.Rental, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(rentalColumns...).
		From("rentals").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("GetByUserID - execute query", err)
	}
	defer rows.Close()

	return r.scanRentals(rows)
}

// List получает аренды с фильтрацией для панели администратора.
// Период [From, To] выбирает аренды, пересекающиеся с ним.
func (r *Repository) List(ctx context.Context, filter domain.RentalsFilter) ([]*domain.Rental, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(rentalColumns...).
		From("rentals").
		OrderBy("created_at DESC")

	if filter.ProductID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"end_date": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_date": *filter.To})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("List - execute query", err)
	}
	defer rows.Close()

	return r.scanRentals(rows)
}

// UpdateStatus обновляет статус аренды и возвращает новое время обновления
func (r *Repository) UpdateStatus(ctx context.Context, rental *domain.Rental, status domain.RentalStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rentals").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": rental.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rental.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrRentalNotFound
	}
	if err != nil {
		return execError("UpdateStatus - execute update", err)
	}

	rental.Status = status
	return nil
}

// Delete физически удаляет аренду.
// Строки availability удаляются каскадно (ON DELETE CASCADE), сервис удаляет их явно
// в той же транзакции.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("rentals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return execError("Delete - execute delete", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRentalNotFound
	}

	return nil
}

// scanRentals сканирует результаты запроса в слайс аренд
func (r *Repository) scanRentals(rows *sql.Rows) ([]*domain.Rental, error) {
	rentals := make([]*domain.Rental, 0)

	for rows.Next() {
		var rental domain.Rental

		err := rows.Scan(
			&rental.ID,
			&rental.ProductID,
			&rental.UserID,
			&rental.StartDate,
			&rental.EndDate,
			&rental.TotalDays,
			&rental.TotalPrice,
			&rental.DepositPaid,
			&rental.Status,
			&rental.PaymentMethod,
			&rental.Notes,
			&rental.CreatedAt,
			&rental.UpdatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanRentals - scan row: %v", ErrScanRow, err)
		}

		rentals = append(rentals, &rental)
	}

	if err := rows.Err(); err != nil {
		return nil, execError("scanRentals - rows error", err)
	}

	return rentals, nil
}

func execError(op string, err error) error {
	if pgerr.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %v", ErrConcurrentUpdate, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
