package update_rental_status

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	"github.com/nguyendangquyen/MAP-DRESS/internal/testfixtures"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

type transitionRecorder struct {
	calls [][2]string
}

func (r *transitionRecorder) StatusTransition(from, to string) {
	r.calls = append(r.calls, [2]string{from, to})
}

var admin = domain.Session{UserID: uuid.New(), Role: domain.RoleAdmin}

func setup(t *testing.T, status domain.RentalStatus) (*testfixtures.Store, *domain.Rental, *transitionRecorder, *UseCase) {
	t.Helper()
	store := testfixtures.NewStore()
	product := store.SeedProduct(domain.Product{Name: "Vest"})
	rental := store.SeedRental(domain.Rental{
		ProductID: product.ID,
		UserID:    uuid.New(),
		StartDate: types.MustParseDate("2025-03-01"),
		EndDate:   types.MustParseDate("2025-03-02"),
		TotalDays: 2,
		Status:    status,
	})
	for _, d := range rental.Days() {
		store.SeedAvailability(domain.Availability{ProductID: product.ID, Date: d, RentalID: &rental.ID})
	}

	metrics := &transitionRecorder{}
	uc := NewUseCase(store.Rentals(), store.Availability(), store.TxManager(), metrics, testfixtures.NopLogger{})
	return store, rental, metrics, uc
}

func TestExecute_FullLifecycleReleasesDatesOnReturn(t *testing.T) {
	store, rental, metrics, uc := setup(t, domain.RentalPending)
	ctx := context.Background()

	for _, next := range []string{"CONFIRMED", "ACTIVE"} {
		resp, err := uc.Execute(ctx, &Request{Session: admin, RentalID: rental.ID, Status: next})
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatus(next), resp.Rental.Status)
		assert.Zero(t, resp.ReleasedDates)
		assert.Len(t, store.AvailabilityRows(rental.ProductID), 2)
	}

	resp, err := uc.Execute(ctx, &Request{Session: admin, RentalID: rental.ID, Status: "RETURNED"})
	require.NoError(t, err)

	assert.Equal(t, domain.RentalActive, resp.PreviousStatus)
	assert.Equal(t, domain.RentalReturned, resp.Rental.Status)
	assert.EqualValues(t, 2, resp.ReleasedDates)
	assert.Empty(t, store.AvailabilityRows(rental.ProductID))
	assert.Equal(t, [][2]string{
		{"PENDING", "CONFIRMED"},
		{"CONFIRMED", "ACTIVE"},
		{"ACTIVE", "RETURNED"},
	}, metrics.calls)
}

func TestExecute_CancelFromPending(t *testing.T) {
	store, rental, _, uc := setup(t, domain.RentalPending)

	resp, err := uc.Execute(context.Background(), &Request{Session: admin, RentalID: rental.ID, Status: "CANCELLED"})
	require.NoError(t, err)

	assert.Equal(t, domain.RentalCancelled, resp.Rental.Status)
	assert.Empty(t, store.AvailabilityRows(rental.ProductID))
}

func TestExecute_RejectsIllegalTransitions(t *testing.T) {
	tests := []struct {
		from domain.RentalStatus
		to   string
	}{
		{from: domain.RentalPending, to: "ACTIVE"},
		{from: domain.RentalPending, to: "RETURNED"},
		{from: domain.RentalConfirmed, to: "PENDING"},
		{from: domain.RentalActive, to: "CONFIRMED"},
		{from: domain.RentalReturned, to: "ACTIVE"},
		{from: domain.RentalCancelled, to: "PENDING"},
		{from: domain.RentalReturned, to: "CANCELLED"},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+tt.to, func(t *testing.T) {
			store, rental, metrics, uc := setup(t, tt.from)

			_, err := uc.Execute(context.Background(), &Request{Session: admin, RentalID: rental.ID, Status: tt.to})

			assert.ErrorIs(t, err, ErrInvalidTransition)
			stored, getErr := store.Rentals().GetByID(context.Background(), rental.ID)
			require.NoError(t, getErr)
			assert.Equal(t, tt.from, stored.Status)
			assert.Len(t, store.AvailabilityRows(rental.ProductID), 2)
			assert.Empty(t, metrics.calls)
		})
	}
}

func TestExecute_SameStatusIsNoop(t *testing.T) {
	_, rental, metrics, uc := setup(t, domain.RentalConfirmed)

	resp, err := uc.Execute(context.Background(), &Request{Session: admin, RentalID: rental.ID, Status: "CONFIRMED"})
	require.NoError(t, err)

	assert.Equal(t, domain.RentalConfirmed, resp.Rental.Status)
	assert.Empty(t, metrics.calls)
}

func TestExecute_Errors(t *testing.T) {
	_, rental, _, uc := setup(t, domain.RentalPending)
	customer := domain.Session{UserID: rental.UserID, Role: domain.RoleUser}

	_, err := uc.Execute(context.Background(), &Request{Session: customer, RentalID: rental.ID, Status: "CANCELLED"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = uc.Execute(context.Background(), &Request{Session: admin, RentalID: rental.ID, Status: "LOST"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = uc.Execute(context.Background(), &Request{Session: admin, RentalID: rental.ID, Status: "confirmed"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = uc.Execute(context.Background(), &Request{Session: admin, RentalID: uuid.New(), Status: "CONFIRMED"})
	assert.ErrorIs(t, err, ErrRentalNotFound)
}
