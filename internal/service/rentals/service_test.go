package rentals

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	"github.com/nguyendangquyen/MAP-DRESS/internal/service/rentals/models"
	"github.com/nguyendangquyen/MAP-DRESS/internal/testfixtures"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/ptr"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

type env struct {
	store   *testfixtures.Store
	service *Service
	owner   domain.Session
	admin   domain.Session
	product *domain.Product
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := testfixtures.NewStore()
	return &env{
		store:   store,
		service: NewService(store.Rentals(), store.Availability(), store.TxManager(), testfixtures.NopLogger{}),
		owner:   domain.Session{UserID: uuid.New(), Role: domain.RoleUser},
		admin:   domain.Session{UserID: uuid.New(), Role: domain.RoleAdmin},
		product: store.SeedProduct(domain.Product{Name: "Áo dài", DailyPrice: decimal.NewFromInt(100)}),
	}
}

func (e *env) rental(status domain.RentalStatus, start, end string) *domain.Rental {
	r := e.store.SeedRental(domain.Rental{
		ProductID:   e.product.ID,
		UserID:      e.owner.UserID,
		StartDate:   types.MustParseDate(start),
		EndDate:     types.MustParseDate(end),
		TotalPrice:  decimal.NewFromInt(300),
		DepositPaid: decimal.NewFromInt(90),
		Status:      status,
	})
	for _, d := range r.Days() {
		e.store.SeedAvailability(domain.Availability{ProductID: r.ProductID, Date: d, RentalID: &r.ID})
	}
	return r
}

func TestGetByID_Access(t *testing.T) {
	e := newEnv(t)
	r := e.rental(domain.RentalPending, "2025-03-01", "2025-03-03")
	ctx := context.Background()

	got, err := e.service.GetByID(ctx, e.owner, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	assert.True(t, got.RemainingAmount.Equal(decimal.NewFromInt(210)))

	_, err = e.service.GetByID(ctx, e.admin, r.ID)
	assert.NoError(t, err)

	stranger := domain.Session{UserID: uuid.New(), Role: domain.RoleUser}
	_, err = e.service.GetByID(ctx, stranger, r.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = e.service.GetByID(ctx, e.admin, uuid.New())
	assert.ErrorIs(t, err, ErrRentalNotFound)
}

func TestGetUserRentals_NewestFirstWithStatusFilter(t *testing.T) {
	e := newEnv(t)
	first := e.rental(domain.RentalReturned, "2025-01-01", "2025-01-02")
	second := e.rental(domain.RentalPending, "2025-03-01", "2025-03-02")
	ctx := context.Background()

	all, err := e.service.GetUserRentals(ctx, &models.GetUserRentalsRequest{Session: e.owner, UserID: e.owner.UserID})
	require.NoError(t, err)
	require.Equal(t, 2, all.Total)
	assert.Equal(t, second.ID, all.Rentals[0].ID)
	assert.Equal(t, first.ID, all.Rentals[1].ID)

	returned, err := e.service.GetUserRentals(ctx, &models.GetUserRentalsRequest{
		Session: e.owner, UserID: e.owner.UserID, Status: ptr.Ptr("RETURNED"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, returned.Total)
	assert.Equal(t, first.ID, returned.Rentals[0].ID)

	_, err = e.service.GetUserRentals(ctx, &models.GetUserRentalsRequest{
		Session: e.owner, UserID: e.owner.UserID, Status: ptr.Ptr("LOST"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.service.GetUserRentals(ctx, &models.GetUserRentalsRequest{
		Session: domain.Session{UserID: uuid.New(), Role: domain.RoleUser}, UserID: e.owner.UserID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestList_AdminOnlyWithFilters(t *testing.T) {
	e := newEnv(t)
	e.rental(domain.RentalReturned, "2025-01-01", "2025-01-02")
	march := e.rental(domain.RentalConfirmed, "2025-03-01", "2025-03-02")
	ctx := context.Background()

	_, err := e.service.List(ctx, &models.ListRentalsRequest{Session: e.owner})
	assert.ErrorIs(t, err, ErrAccessDenied)

	all, err := e.service.List(ctx, &models.ListRentalsRequest{Session: e.admin})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)

	filtered, err := e.service.List(ctx, &models.ListRentalsRequest{
		Session:   e.admin,
		ProductID: &e.product.ID,
		From:      ptr.Ptr(types.MustParseDate("2025-02-01")),
	})
	require.NoError(t, err)
	require.Equal(t, 1, filtered.Total)
	assert.Equal(t, march.ID, filtered.Rentals[0].ID)

	_, err = e.service.List(ctx, &models.ListRentalsRequest{
		Session: e.admin,
		From:    ptr.Ptr(types.MustParseDate("2025-02-01")),
		To:      ptr.Ptr(types.MustParseDate("2025-01-01")),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_OnlyTerminalAndCascades(t *testing.T) {
	e := newEnv(t)
	active := e.rental(domain.RentalActive, "2025-03-01", "2025-03-02")
	done := e.rental(domain.RentalCancelled, "2025-04-01", "2025-04-02")
	ctx := context.Background()

	assert.ErrorIs(t, e.service.Delete(ctx, e.owner, done.ID), ErrAccessDenied)
	assert.ErrorIs(t, e.service.Delete(ctx, e.admin, active.ID), ErrCannotDelete)
	assert.ErrorIs(t, e.service.Delete(ctx, e.admin, uuid.New()), ErrRentalNotFound)

	require.NoError(t, e.service.Delete(ctx, e.admin, done.ID))

	assert.Equal(t, 1, e.store.RentalCount())
	rows := e.store.AvailabilityRows(e.product.ID)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, active.ID, *row.RentalID)
	}
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) record(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Info(format string, v ...interface{})  { l.record(format, v...) }
func (l *recordingLogger) Warn(format string, v ...interface{})  { l.record(format, v...) }
func (l *recordingLogger) Error(format string, v ...interface{}) { l.record(format, v...) }

func TestList_LogsFilterValuesVerbatim(t *testing.T) {
	e := newEnv(t)
	log := &recordingLogger{}
	svc := NewService(e.store.Rentals(), e.store.Availability(), e.store.TxManager(), log)

	_, err := svc.List(context.Background(), &models.ListRentalsRequest{
		Session: e.admin,
		Status:  ptr.Ptr("100%s"),
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	require.NotEmpty(t, log.lines)
	assert.Contains(t, log.lines[0], "status=100%s")
	assert.NotContains(t, log.lines[0], "%!")
}
