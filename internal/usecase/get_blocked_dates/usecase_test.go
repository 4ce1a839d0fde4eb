package get_blocked_dates

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	productRepo "github.com/nguyendangquyen/MAP-DRESS/internal/infra/storage/product"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

type stubProducts struct{ product *domain.Product }

func (s *stubProducts) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	if s.product == nil || s.product.ID != id {
		return nil, productRepo.ErrProductNotFound
	}
	return s.product, nil
}

type stubAvailability struct {
	dates []types.Date
	err   error
}

func (s *stubAvailability) GetBlockedDates(context.Context, uuid.UUID) ([]types.Date, error) {
	return s.dates, s.err
}

type stubRentals struct{ rentals []*domain.Rental }

func (s *stubRentals) GetActiveByProduct(context.Context, uuid.UUID) ([]*domain.Rental, error) {
	return s.rentals, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func d(s string) types.Date { return types.MustParseDate(s) }

func TestExecute_UnionOfRowsAndRentalRanges(t *testing.T) {
	product := &domain.Product{ID: uuid.New()}
	uc := NewUseCase(
		&stubProducts{product: product},
		&stubAvailability{dates: []types.Date{d("2025-03-02"), d("2025-03-15")}},
		&stubRentals{rentals: []*domain.Rental{
			{StartDate: d("2025-03-01"), EndDate: d("2025-03-03"), Status: domain.RentalPending},
		}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ProductID: product.ID})

	require.NoError(t, err)
	assert.Equal(t, product.ID, resp.ProductID)
	assert.Equal(t, []types.Date{d("2025-03-01"), d("2025-03-02"), d("2025-03-03"), d("2025-03-15")}, resp.BlockedDates)
}

func TestExecute_EmptyProduct(t *testing.T) {
	product := &domain.Product{ID: uuid.New()}
	uc := NewUseCase(&stubProducts{product: product}, &stubAvailability{}, &stubRentals{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ProductID: product.ID})

	require.NoError(t, err)
	assert.NotNil(t, resp.BlockedDates)
	assert.Empty(t, resp.BlockedDates)
}

func TestExecute_Window(t *testing.T) {
	product := &domain.Product{ID: uuid.New()}
	uc := NewUseCase(
		&stubProducts{product: product},
		&stubAvailability{dates: []types.Date{d("2025-02-28"), d("2025-03-10"), d("2025-05-01")}},
		&stubRentals{},
		nopLogger{},
	)
	from, to := d("2025-03-01"), d("2025-04-30")

	resp, err := uc.Execute(context.Background(), &Request{ProductID: product.ID, From: &from, To: &to})

	require.NoError(t, err)
	assert.Equal(t, []types.Date{d("2025-03-10")}, resp.BlockedDates)

	_, err = uc.Execute(context.Background(), &Request{ProductID: product.ID, From: &to, To: &from})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_Errors(t *testing.T) {
	product := &domain.Product{ID: uuid.New()}

	_, err := NewUseCase(&stubProducts{}, &stubAvailability{}, &stubRentals{}, nopLogger{}).
		Execute(context.Background(), &Request{ProductID: uuid.New()})
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = NewUseCase(&stubProducts{product: product}, &stubAvailability{err: assert.AnError}, &stubRentals{}, nopLogger{}).
		Execute(context.Background(), &Request{ProductID: product.ID})
	assert.ErrorIs(t, err, ErrInternal)
}
