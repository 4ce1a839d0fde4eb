package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

// RentalStatus статус аренды
type RentalStatus string

const (
	RentalPending   RentalStatus = "PENDING"
	RentalConfirmed RentalStatus = "CONFIRMED"
	RentalActive    RentalStatus = "ACTIVE"
	RentalReturned  RentalStatus = "RETURNED"
	RentalCancelled RentalStatus = "CANCELLED"
)

// ErrUnknownRentalStatus строка не является статусом аренды
var ErrUnknownRentalStatus = errors.New("unknown rental status")

// rentalTransitions допустимые переходы. RETURNED и CANCELLED терминальные.
var rentalTransitions = map[RentalStatus][]RentalStatus{
	RentalPending:   {RentalConfirmed, RentalCancelled},
	RentalConfirmed: {RentalActive, RentalCancelled},
	RentalActive:    {RentalReturned, RentalCancelled},
	RentalReturned:  {},
	RentalCancelled: {},
}

// ParseRentalStatus разбирает статус из запроса
func ParseRentalStatus(s string) (RentalStatus, error) {
	status := RentalStatus(s)
	if _, ok := rentalTransitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRentalStatus, s)
	}
	return status, nil
}

// IsActive статус блокирует даты в календаре
func (s RentalStatus) IsActive() bool {
	return s == RentalPending || s == RentalConfirmed || s == RentalActive
}

// IsTerminal из статуса нет переходов
func (s RentalStatus) IsTerminal() bool {
	return len(rentalTransitions[s]) == 0
}

// CanTransitionTo разрешен ли переход s -> next
func (s RentalStatus) CanTransitionTo(next RentalStatus) bool {
	for _, allowed := range rentalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AllowedTransitions список статусов, в которые можно перейти
func (s RentalStatus) AllowedTransitions() []RentalStatus {
	return append([]RentalStatus(nil), rentalTransitions[s]...)
}

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentDeposit PaymentMethod = "deposit"
	PaymentFull    PaymentMethod = "full"
)

// IsValid известный способ оплаты
func (m PaymentMethod) IsValid() bool {
	return m == PaymentDeposit || m == PaymentFull
}

// Rental аренда товара на непрерывный или выборочный набор дней
type Rental struct {
	ID            uuid.UUID
	ProductID     uuid.UUID
	UserID        uuid.UUID
	StartDate     types.Date // первый выбранный день
	EndDate       types.Date // последний выбранный день, включительно
	TotalDays     int        // количество выбранных дней
	TotalPrice    decimal.Decimal
	DepositPaid   decimal.Decimal
	Status        RentalStatus
	PaymentMethod PaymentMethod
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive аренда блокирует свои даты
func (r *Rental) IsActive() bool {
	return r.Status.IsActive()
}

// CanBeDeleted из истории можно удалять только завершенные аренды
func (r *Rental) CanBeDeleted() bool {
	return r.Status.IsTerminal()
}

// RemainingAmount сумма к доплате
func (r *Rental) RemainingAmount() decimal.Decimal {
	return r.TotalPrice.Sub(r.DepositPaid)
}

// Days все дни диапазона [StartDate, EndDate]
func (r *Rental) Days() []types.Date {
	return ExpandRange(r.StartDate, r.EndDate)
}

// RentalsFilter фильтр списка аренд для администратора
type RentalsFilter struct {
	ProductID *uuid.UUID
	UserID    *uuid.UUID
	Status    *RentalStatus
	From      *types.Date // аренды, заканчивающиеся не раньше From
	To        *types.Date // аренды, начинающиеся не позже To
}
