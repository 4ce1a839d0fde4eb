package create_booking

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	"github.com/nguyendangquyen/MAP-DRESS/internal/testfixtures"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/ptr"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

type countingMetrics struct {
	mu        sync.Mutex
	created   int
	conflicts int
}

func (m *countingMetrics) BookingCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *countingMetrics) BookingConflict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts++
}

type fixture struct {
	store   *testfixtures.Store
	product *domain.Product
	metrics *countingMetrics
	uc      *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testfixtures.NewStore()
	product := store.SeedProduct(domain.Product{
		Name:       "Áo dài đỏ",
		DailyPrice: decimal.NewFromInt(500000),
		Stock:      1,
	})
	metrics := &countingMetrics{}

	uc := NewUseCase(
		store.Products(),
		store.Users(),
		store.Rentals(),
		store.Availability(),
		store.TxManager(),
		metrics,
		DefaultPolicy(),
		testfixtures.NopLogger{},
	).WithTimeProvider(testfixtures.NewClock(time.Date(2025, time.February, 20, 12, 0, 0, 0, time.UTC)))

	return &fixture{store: store, product: product, metrics: metrics, uc: uc}
}

func dates(ss ...string) []types.Date {
	out := make([]types.Date, len(ss))
	for i, s := range ss {
		out[i] = types.MustParseDate(s)
	}
	return out
}

func (f *fixture) request(selected ...string) *Request {
	return &Request{
		ProductID:     f.product.ID,
		CustomerName:  "Guest",
		Email:         "guest@example.com",
		SelectedDates: dates(selected...),
	}
}

func TestExecute_GuestBooking(t *testing.T) {
	f := newFixture(t)
	req := f.request("2025-03-02", "2025-03-01")
	req.Email = "Guest@Example.com"
	req.TotalPrice = ptr.Ptr(decimal.NewFromInt(1000000))
	req.TotalDays = 2

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, 2, resp.TotalDays)
	assert.Equal(t, types.MustParseDate("2025-03-01"), resp.StartDate)
	assert.Equal(t, types.MustParseDate("2025-03-02"), resp.EndDate)
	assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, resp.DepositPaid.Equal(decimal.NewFromInt(300000)))
	assert.True(t, resp.RemainingAmount.Equal(decimal.NewFromInt(700000)))
	assert.Equal(t, "deposit", resp.PaymentMethod)
	assert.True(t, resp.GuestCreated)

	guest := f.store.UserByEmail("guest@example.com")
	require.NotNil(t, guest)
	assert.True(t, guest.IsGuest)
	assert.Equal(t, resp.UserID, guest.ID)
	cost, err := bcrypt.Cost([]byte(guest.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)

	rows := f.store.AvailabilityRows(f.product.ID)
	require.Len(t, rows, 2)
	assert.Equal(t, resp.ID, *rows[0].RentalID)
	assert.False(t, rows[0].IsBlocked)

	assert.Equal(t, 1, f.metrics.created)
}

func TestExecute_FullPaymentAndExistingUser(t *testing.T) {
	f := newFixture(t)
	existing := f.store.SeedUser(domain.User{Name: "Lan", Email: "lan@example.com"})
	req := f.request("2025-03-01")
	req.Email = "LAN@example.com "
	req.PaymentMethod = domain.PaymentFull

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, existing.ID, resp.UserID)
	assert.False(t, resp.GuestCreated)
	assert.True(t, resp.DepositPaid.Equal(resp.TotalPrice))
	assert.True(t, resp.RemainingAmount.IsZero())
	assert.Equal(t, 1, f.store.UserCount())
}

func TestExecute_NonContiguousSelection(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request("2025-03-01", "2025-03-05", "2025-03-01"))
	require.NoError(t, err)

	assert.Equal(t, 2, resp.TotalDays)
	assert.Equal(t, dates("2025-03-01", "2025-03-05"), resp.BookedDates)
	assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(1000000)))
	assert.Len(t, f.store.AvailabilityRows(f.product.ID), 2)
}

func TestExecute_RejectsTakenDates(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Execute(context.Background(), f.request("2025-03-01", "2025-03-02"))
	require.NoError(t, err)

	req := f.request("2025-03-02", "2025-03-03")
	req.Email = "other@example.com"
	_, err = f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrDatesNotAvailable)
	assert.Equal(t, 1, f.store.RentalCount())
	assert.Nil(t, f.store.UserByEmail("other@example.com"), "guest must be rolled back")
	assert.Equal(t, 1, f.metrics.conflicts)
}

func TestExecute_RejectsDaysInsideActiveRentalRange(t *testing.T) {
	f := newFixture(t)
	f.store.SeedRental(domain.Rental{
		ProductID: f.product.ID,
		UserID:    uuid.New(),
		StartDate: types.MustParseDate("2025-03-10"),
		EndDate:   types.MustParseDate("2025-03-12"),
		TotalDays: 3,
		Status:    domain.RentalActive,
	})

	_, err := f.uc.Execute(context.Background(), f.request("2025-03-11"))

	assert.ErrorIs(t, err, ErrDatesNotAvailable)
}

func TestExecute_UniqueConstraintRollsBackEverything(t *testing.T) {
	f := newFixture(t)
	// Строка календаря осталась от завершенной аренды: в занятых днях её нет,
	// но уникальность (product_id, date) все равно срабатывает.
	old := f.store.SeedRental(domain.Rental{
		ProductID: f.product.ID,
		StartDate: types.MustParseDate("2025-03-01"),
		EndDate:   types.MustParseDate("2025-03-01"),
		TotalDays: 1,
		Status:    domain.RentalReturned,
	})
	f.store.SeedAvailability(domain.Availability{
		ProductID: f.product.ID,
		Date:      types.MustParseDate("2025-03-02"),
		RentalID:  &old.ID,
	})

	_, err := f.uc.Execute(context.Background(), f.request("2025-03-01", "2025-03-02"))

	assert.ErrorIs(t, err, ErrDatesNotAvailable)
	assert.Equal(t, 1, f.store.RentalCount())
	assert.Len(t, f.store.AvailabilityRows(f.product.ID), 1)
	assert.Equal(t, 0, f.store.UserCount())
}

// Фейковое хранилище выполняет транзакции по очереди, поэтому здесь проверяется
// повторная проверка занятости внутри транзакции. Откат по нарушению уникальности
// покрыт TestExecute_UniqueConstraintRollsBackEverything.
func TestExecute_ConcurrentOverlappingBookings(t *testing.T) {
	f := newFixture(t)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := f.request("2025-03-01", "2025-03-02")
			if i%2 == 1 {
				req = f.request("2025-03-02", "2025-03-03")
			}
			_, err := f.uc.Execute(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, ErrDatesNotAvailable):
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
	assert.Equal(t, 1, f.store.RentalCount())
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "no dates", mutate: func(r *Request) { r.SelectedDates = nil }, wantErr: ErrInvalidInput},
		{name: "no email", mutate: func(r *Request) { r.Email = " " }, wantErr: ErrInvalidInput},
		{name: "unknown payment", mutate: func(r *Request) { r.PaymentMethod = "cash" }, wantErr: ErrInvalidInput},
		{name: "long notes", mutate: func(r *Request) {
			r.Notes = ptr.Ptr(strings.Repeat("a", domain.MaxNotesLength+1))
		}, wantErr: ErrInvalidInput},
		{name: "past date", mutate: func(r *Request) { r.SelectedDates = dates("2025-02-19", "2025-03-01") }, wantErr: ErrDateInPast},
		{name: "days mismatch", mutate: func(r *Request) { r.TotalDays = 3 }, wantErr: ErrTotalDaysMismatch},
		{name: "price mismatch", mutate: func(r *Request) { r.TotalPrice = ptr.Ptr(decimal.NewFromInt(1)) }, wantErr: ErrPriceMismatch},
		{name: "unknown product", mutate: func(r *Request) { r.ProductID = uuid.New() }, wantErr: ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := f.request("2025-03-01", "2025-03-02")
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, f.store.RentalCount())
		})
	}
}

func TestExecute_PriceWithinTolerance(t *testing.T) {
	f := newFixture(t)
	req := f.request("2025-03-01")
	req.TotalPrice = ptr.Ptr(decimal.RequireFromString("499999.5"))

	_, err := f.uc.Execute(context.Background(), req)

	assert.NoError(t, err)
}

func TestExecute_LengthLimitsCountCharacters(t *testing.T) {
	f := newFixture(t)
	req := f.request("2025-03-01")
	req.CustomerName = strings.Repeat("Ơ", domain.MaxCustomerNameLength)
	req.Notes = ptr.Ptr(strings.Repeat("đ", domain.MaxNotesLength))

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, *req.Notes, ptr.Deref(resp.Notes))

	f = newFixture(t)
	req = f.request("2025-03-01")
	req.Notes = ptr.Ptr(strings.Repeat("đ", domain.MaxNotesLength+1))

	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, f.store.RentalCount())
}

func TestExecute_TodayIsAllowed(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), f.request("2025-02-20"))

	assert.NoError(t, err)
}

func TestExecute_MaintenanceProduct(t *testing.T) {
	f := newFixture(t)
	broken := f.store.SeedProduct(domain.Product{DailyPrice: decimal.NewFromInt(1), Status: domain.ProductMaintenance})
	req := f.request("2025-03-01")
	req.ProductID = broken.ID

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrProductUnavailable)
}
