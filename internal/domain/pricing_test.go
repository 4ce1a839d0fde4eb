package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDepositAmount(t *testing.T) {
	total := decimal.NewFromInt(1000000)

	assert.True(t, DepositAmount(total, PaymentDeposit, DefaultDepositPercent).Equal(decimal.NewFromInt(300000)))
	assert.True(t, DepositAmount(total, PaymentFull, DefaultDepositPercent).Equal(total))

	// 30% от 1005 = 301.5 -> 302
	assert.True(t, DepositAmount(decimal.NewFromInt(1005), PaymentDeposit, 30).Equal(decimal.NewFromInt(302)))
}

func TestRentalTotal(t *testing.T) {
	daily := decimal.RequireFromString("150000.50")

	assert.True(t, RentalTotal(daily, 2).Equal(decimal.RequireFromString("300001")))
	assert.True(t, RentalTotal(daily, 0).IsZero())
}

func TestPriceWithinTolerance(t *testing.T) {
	one := decimal.NewFromInt(1)

	assert.True(t, PriceWithinTolerance(decimal.NewFromInt(300000), decimal.RequireFromString("300000.9"), one))
	assert.True(t, PriceWithinTolerance(decimal.NewFromInt(300000), decimal.NewFromInt(299999), one))
	assert.False(t, PriceWithinTolerance(decimal.NewFromInt(300000), decimal.NewFromInt(200000), one))
}

func TestSession(t *testing.T) {
	admin := Session{Role: RoleAdmin}
	user := Session{UserID: [16]byte{1}, Role: RoleUser}

	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.CanAccessUser([16]byte{9}))
	assert.True(t, user.CanAccessUser([16]byte{1}))
	assert.False(t, user.CanAccessUser([16]byte{2}))
	assert.Equal(t, "guest@example.com", NormalizeEmail("  Guest@Example.COM "))
}
