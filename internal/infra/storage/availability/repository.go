package availability

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/dbmetrics"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/pgerr"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/psqlbuilder"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

// Repository репозиторий календаря занятости товаров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBlockedDates дни товара, занятые ручной блокировкой или активной арендой.
// Строки, принадлежащие аренде в статусе RETURNED или CANCELLED, не учитываются.
// В транзакции строки календаря блокируются (FOR UPDATE OF a).
func (r *Repository) GetBlockedDates(ctx context.Context, productID uuid.UUID) ([]types.Date, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("a.date").
		From("availability a").
		LeftJoin("rentals r ON r.id = a.rental_id").
		Where(squirrel.Eq{"a.product_id": productID}).
		Where(squirrel.Or{
			squirrel.Eq{"a.is_blocked": true},
			squirrel.Eq{"r.status": domain.StatusStrings(domain.ActiveRentalStatuses)},
		}).
		OrderBy("a.date ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF a")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("GetBlockedDates - execute query", err)
	}
	defer rows.Close()

	dates := make([]types.Date, 0)
	for rows.Next() {
		var d types.Date
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: GetBlockedDates - scan date: %v", ErrScanRow, err)
		}
		dates = append(dates, d)
	}

	if err := rows.Err(); err != nil {
		return nil, execError("GetBlockedDates - rows error", err)
	}

	return dates, nil
}

// CreateBatch вставляет строки календаря одним запросом.
// Если хотя бы один день уже занят, возвращает ErrDateTaken; транзакцию нужно откатить.
func (r *Repository) CreateBatch(ctx context.Context, rows []*domain.Availability) error {
	if len(rows) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("availability").
		Columns("id", "product_id", "date", "is_blocked", "rental_id")

	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		insertBuilder = insertBuilder.Values(row.ID, row.ProductID, row.Date, row.IsBlocked, row.RentalID)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDateTaken, pgerr.Constraint(err))
		}
		return execError("CreateBatch - execute insert", err)
	}

	return nil
}

// DeleteByRentalID освобождает все дни аренды. Возвращает количество удаленных строк.
func (r *Repository) DeleteByRentalID(ctx context.Context, rentalID uuid.UUID) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability").
		Where(squirrel.Eq{"rental_id": rentalID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByRentalID - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, execError("DeleteByRentalID - execute delete", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByRentalID - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// DeleteManualBlocks снимает ручные блокировки с указанных дней.
// Дни, занятые арендой, не затрагиваются.
func (r *Repository) DeleteManualBlocks(ctx context.Context, productID uuid.UUID, dates []types.Date) (int64, error) {
	if len(dates) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	values := make([]string, len(dates))
	for i, d := range dates {
		values[i] = d.String()
	}

	query, args, err := psqlbuilder.Delete("availability").
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.Eq{"is_blocked": true}).
		Where(squirrel.Eq{"rental_id": nil}).
		Where(squirrel.Eq{"date": values}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteManualBlocks - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, execError("DeleteManualBlocks - execute delete", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteManualBlocks - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func execError(op string, err error) error {
	if pgerr.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %v", ErrConcurrentUpdate, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
