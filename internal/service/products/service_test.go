package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	"github.com/nguyendangquyen/MAP-DRESS/internal/service/products/models"
	"github.com/nguyendangquyen/MAP-DRESS/internal/testfixtures"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

var (
	admin    = domain.Session{UserID: uuid.New(), Role: domain.RoleAdmin}
	customer = domain.Session{UserID: uuid.New(), Role: domain.RoleUser}
)

func newService(store *testfixtures.Store) *Service {
	return NewService(store.Products(), store.Availability(), store.Rentals(), store.TxManager(), testfixtures.NopLogger{})
}

func dates(ss ...string) []types.Date {
	out := make([]types.Date, len(ss))
	for i, s := range ss {
		out[i] = types.MustParseDate(s)
	}
	return out
}

func TestCreateAndGet(t *testing.T) {
	store := testfixtures.NewStore()
	svc := newService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreateProductRequest{
		Session:    admin,
		Name:       "Váy cưới",
		DailyPrice: decimal.NewFromInt(800000),
		Stock:      2,
		Colors:     []string{"white"},
	})
	require.NoError(t, err)
	assert.Equal(t, "available", created.Status)
	assert.Equal(t, []string{}, created.Images)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Váy cưới", got.Name)
	assert.True(t, got.DailyPrice.Equal(decimal.NewFromInt(800000)))

	_, err = svc.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreate_Rejects(t *testing.T) {
	svc := newService(testfixtures.NewStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateProductRequest{Session: customer, Name: "x"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Create(ctx, &models.CreateProductRequest{Session: admin, Name: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, &models.CreateProductRequest{Session: admin, Name: "x", DailyPrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, &models.CreateProductRequest{Session: admin, Name: "x", Status: "lost"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBlockAndUnblockDates(t *testing.T) {
	store := testfixtures.NewStore()
	svc := newService(store)
	product := store.SeedProduct(domain.Product{Name: "Vest"})
	ctx := context.Background()

	resp, err := svc.BlockDates(ctx, &models.DatesRequest{
		Session: admin, ProductID: product.ID, Dates: dates("2025-03-02", "2025-03-01", "2025-03-02"),
	})
	require.NoError(t, err)
	assert.Equal(t, dates("2025-03-01", "2025-03-02"), resp.Dates)
	assert.EqualValues(t, 2, resp.Affected)

	rows := store.AvailabilityRows(product.ID)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].IsManualBlock())

	_, err = svc.BlockDates(ctx, &models.DatesRequest{
		Session: admin, ProductID: product.ID, Dates: dates("2025-03-02", "2025-03-03"),
	})
	assert.ErrorIs(t, err, ErrDatesTaken)
	assert.Len(t, store.AvailabilityRows(product.ID), 2)

	unblocked, err := svc.UnblockDates(ctx, &models.DatesRequest{
		Session: admin, ProductID: product.ID, Dates: dates("2025-03-01", "2025-03-05"),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, unblocked.Affected)
	assert.Len(t, store.AvailabilityRows(product.ID), 1)
}

func TestBlockDates_ConflictsWithRental(t *testing.T) {
	store := testfixtures.NewStore()
	svc := newService(store)
	product := store.SeedProduct(domain.Product{Name: "Vest"})
	store.SeedRental(domain.Rental{
		ProductID: product.ID,
		StartDate: types.MustParseDate("2025-03-01"),
		EndDate:   types.MustParseDate("2025-03-03"),
		Status:    domain.RentalConfirmed,
	})

	_, err := svc.BlockDates(context.Background(), &models.DatesRequest{
		Session: admin, ProductID: product.ID, Dates: dates("2025-03-03"),
	})

	assert.ErrorIs(t, err, ErrDatesTaken)
	assert.Empty(t, store.AvailabilityRows(product.ID))
}

func TestUnblockDates_KeepsRentalDays(t *testing.T) {
	store := testfixtures.NewStore()
	svc := newService(store)
	product := store.SeedProduct(domain.Product{Name: "Vest"})
	rentalID := uuid.New()
	store.SeedAvailability(domain.Availability{ProductID: product.ID, Date: types.MustParseDate("2025-03-01"), RentalID: &rentalID})

	resp, err := svc.UnblockDates(context.Background(), &models.DatesRequest{
		Session: admin, ProductID: product.ID, Dates: dates("2025-03-01"),
	})
	require.NoError(t, err)

	assert.Zero(t, resp.Affected)
	assert.Len(t, store.AvailabilityRows(product.ID), 1)
}

func TestDates_Rejects(t *testing.T) {
	store := testfixtures.NewStore()
	svc := newService(store)
	product := store.SeedProduct(domain.Product{Name: "Vest"})
	ctx := context.Background()

	_, err := svc.BlockDates(ctx, &models.DatesRequest{Session: customer, ProductID: product.ID, Dates: dates("2025-03-01")})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.BlockDates(ctx, &models.DatesRequest{Session: admin, ProductID: product.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UnblockDates(ctx, &models.DatesRequest{Session: admin, ProductID: uuid.New(), Dates: dates("2025-03-01")})
	assert.ErrorIs(t, err, ErrProductNotFound)
}
