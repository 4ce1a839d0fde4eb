package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBooking "github.com/nguyendangquyen/MAP-DRESS/internal/usecase/create_booking"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/validation"
)

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validBody(productID uuid.UUID) string {
	return fmt.Sprintf(`{"productId":%q,"customerName":"Lan","email":"Lan@Example.com","phone":"",
		"selectedDates":["2025-03-02","2025-03-01"],"totalPrice":"1000000","totalDays":2,"paymentMethod":"full"}`, productID)
}

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	productID := uuid.New()
	created := time.Date(2025, time.February, 20, 9, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createBooking.Response{
		ID:              uuid.New(),
		ProductID:       productID,
		UserID:          uuid.New(),
		StartDate:       types.MustParseDate("2025-03-01"),
		EndDate:         types.MustParseDate("2025-03-02"),
		BookedDates:     []types.Date{types.MustParseDate("2025-03-01"), types.MustParseDate("2025-03-02")},
		TotalDays:       2,
		TotalPrice:      decimal.NewFromInt(1000000),
		DepositPaid:     decimal.NewFromInt(1000000),
		RemainingAmount: decimal.Zero,
		Status:          "PENDING",
		PaymentMethod:   "full",
		GuestCreated:    true,
		CreatedAt:       created,
		UpdatedAt:       created,
	}}

	rec := serve(NewHandler(uc, validation.New(), nopLogger{}), validBody(productID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.NotNil(t, uc.got)
	assert.Equal(t, productID, uc.got.ProductID)
	assert.Nil(t, uc.got.Phone)
	assert.Equal(t, []types.Date{types.MustParseDate("2025-03-02"), types.MustParseDate("2025-03-01")}, uc.got.SelectedDates)
	require.NotNil(t, uc.got.TotalPrice)
	assert.True(t, uc.got.TotalPrice.Equal(decimal.NewFromInt(1000000)))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-03-01", resp["startDate"])
	assert.Equal(t, "0", resp["remainingAmount"])
	assert.Equal(t, "2025-02-20T09:00:00Z", resp["createdAt"])
	assert.Equal(t, true, resp["guestCreated"])
}

func TestHandle_RejectsBeforeUseCase(t *testing.T) {
	productID := uuid.New()
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "broken json", body: `{"productId":`},
		{name: "unknown field", body: `{"productId":"` + productID.String() + `","email":"a@b.co","selectedDates":["2025-03-01"],"admin":true}`},
		{name: "bad product id", body: `{"productId":"x","email":"a@b.co","selectedDates":["2025-03-01"]}`},
		{name: "bad email", body: `{"productId":"` + productID.String() + `","email":"x","selectedDates":["2025-03-01"]}`},
		{name: "bad date", body: `{"productId":"` + productID.String() + `","email":"a@b.co","selectedDates":["2025-02-30"]}`},
		{name: "no dates", body: `{"productId":"` + productID.String() + `","email":"a@b.co","selectedDates":[]}`},
		{name: "negative days", body: `{"productId":"` + productID.String() + `","email":"a@b.co","selectedDates":["2025-03-01"],"totalDays":-1}`},
		{name: "bad payment", body: `{"productId":"` + productID.String() + `","email":"a@b.co","selectedDates":["2025-03-01"],"paymentMethod":"card"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{}
			rec := serve(NewHandler(uc, validation.New(), nopLogger{}), tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: createBooking.ErrDatesNotAvailable, want: http.StatusConflict},
		{err: createBooking.ErrConcurrentRequest, want: http.StatusConflict},
		{err: createBooking.ErrProductUnavailable, want: http.StatusConflict},
		{err: createBooking.ErrProductNotFound, want: http.StatusNotFound},
		{err: createBooking.ErrDateInPast, want: http.StatusBadRequest},
		{err: createBooking.ErrPriceMismatch, want: http.StatusBadRequest},
		{err: createBooking.ErrTotalDaysMismatch, want: http.StatusBadRequest},
		{err: createBooking.ErrInvalidInput, want: http.StatusBadRequest},
		{err: createBooking.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &stubUseCase{err: fmt.Errorf("%w: details", tt.err)}
			rec := serve(NewHandler(uc, validation.New(), nopLogger{}), validBody(uuid.New()))
			assert.Equal(t, tt.want, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}
