package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nguyendangquyen/MAP-DRESS/internal/domain"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

// validateRequest валидирует входные данные запроса и нормализует способ оплаты
func validateRequest(req *Request) error {
	if req.ProductID == uuid.Nil {
		return fmt.Errorf("%w: productId is required", ErrInvalidInput)
	}

	email := domain.NormalizeEmail(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}

	if len(req.SelectedDates) == 0 {
		return fmt.Errorf("%w: at least one date must be selected", ErrInvalidInput)
	}

	if len(req.SelectedDates) > domain.MaxSelectedDates {
		return fmt.Errorf("%w: too many dates selected", ErrInvalidInput)
	}

	for _, d := range req.SelectedDates {
		if d.IsZero() {
			return fmt.Errorf("%w: empty date in selection", ErrInvalidInput)
		}
	}

	if utf8.RuneCountInString(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName is too long", ErrInvalidInput)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.TotalDays < 0 {
		return fmt.Errorf("%w: totalDays must not be negative", ErrInvalidInput)
	}

	if req.TotalPrice != nil && req.TotalPrice.IsNegative() {
		return fmt.Errorf("%w: totalPrice must not be negative", ErrInvalidInput)
	}

	if req.PaymentMethod == "" {
		req.PaymentMethod = domain.PaymentDeposit
	}
	if !req.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}

	return nil
}

// validateNotInPast проверяет, что первый выбранный день не раньше сегодняшнего
func validateNotInPast(dates []types.Date, now time.Time) error {
	today := types.DateOf(now)
	if dates[0].Before(today) {
		return fmt.Errorf("%w: %s", ErrDateInPast, dates[0])
	}
	return nil
}

// validateClientTotals сверяет количество дней и сумму клиента с рассчитанными сервером
func validateClientTotals(req *Request, days int, total, tolerance decimal.Decimal) error {
	if req.TotalDays != 0 && req.TotalDays != days {
		return fmt.Errorf("%w: client=%d, selected=%d", ErrTotalDaysMismatch, req.TotalDays, days)
	}

	if req.TotalPrice != nil && !domain.PriceWithinTolerance(*req.TotalPrice, total, tolerance) {
		return fmt.Errorf("%w: client=%s, server=%s", ErrPriceMismatch, req.TotalPrice.String(), total.String())
	}

	return nil
}
