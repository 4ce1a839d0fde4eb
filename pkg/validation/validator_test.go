package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingForm struct {
	Email         string   `validate:"required,email"`
	SelectedDates []string `validate:"required,min=1,dive,date"`
	PaymentMethod string   `validate:"omitempty,oneof=deposit full"`
}

func TestValidator(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(bookingForm{
		Email:         "guest@example.com",
		SelectedDates: []string{"2025-03-01", "2025-03-02"},
	}))

	err := v.Validate(bookingForm{
		Email:         "not-an-email",
		SelectedDates: []string{"2025-03-01", "03/02/2025"},
		PaymentMethod: "cash",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Email: email")
	assert.Contains(t, err.Error(), "SelectedDates[1]: date")
	assert.Contains(t, err.Error(), "PaymentMethod: oneof=deposit full")

	err = v.Validate(bookingForm{Email: "guest@example.com"})
	assert.ErrorIs(t, err, ErrValidation)
}
