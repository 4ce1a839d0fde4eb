package product

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/dbmetrics"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/psqlbuilder"
)

var productColumns = []string{
	"id",
	"name",
	"description",
	"daily_price",
	"stock",
	"status",
	"category_id",
	"images",
	"colors",
	"created_at",
	"updated_at",
}

// Repository репозиторий товаров каталога
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория товаров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет товар. ID генерируется, если не задан.
func (r *Repository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("products").
		Columns(
			"id",
			"name",
			"description",
			"daily_price",
			"stock",
			"status",
			"category_id",
			"images",
			"colors",
		).
		Values(
			product.ID,
			product.Name,
			product.Description,
			product.DailyPrice,
			product.Stock,
			product.Status,
			product.CategoryID,
			pq.Array(product.Images),
			pq.Array(product.Colors),
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return product, nil
}

// GetByID получает товар по ID.
// Внутри транзакции строка блокируется на чтение (FOR SHARE), чтобы статус и цена
// не изменились до конца бронирования.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR SHARE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	product, err := scanProduct(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan product: %v", ErrScanRow, err)
	}

	return product, nil
}

func scanProduct(row *sql.Row) (*domain.Product, error) {
	var (
		product    domain.Product
		categoryID uuid.NullUUID
		images     pq.StringArray
		colors     pq.StringArray
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.DailyPrice,
		&product.Stock,
		&product.Status,
		&categoryID,
		&images,
		&colors,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		product.CategoryID = &categoryID.UUID
	}
	product.Images = []string(images)
	product.Colors = []string(colors)

	return &product, nil
}
