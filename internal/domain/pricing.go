package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// RentalTotal стоимость аренды: дневная цена, умноженная на число дней
func RentalTotal(dailyPrice decimal.Decimal, days int) decimal.Decimal {
	return dailyPrice.Mul(decimal.NewFromInt(int64(days)))
}

// DepositAmount сумма к оплате при бронировании.
// "full" - вся сумма, иначе percent% с округлением до целого.
func DepositAmount(total decimal.Decimal, method PaymentMethod, percent int) decimal.Decimal {
	if method == PaymentFull {
		return total
	}
	return total.Mul(decimal.NewFromInt(int64(percent))).Div(hundred).Round(0)
}

// PriceWithinTolerance |a - b| <= tolerance
func PriceWithinTolerance(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}
