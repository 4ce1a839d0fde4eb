package domain

// Значения по умолчанию для политики бронирования
const (
	DefaultDepositPercent = 30 // предоплата при способе оплаты "deposit", %
	DefaultPriceTolerance = "1"
)

// Ограничения бизнес-валидации
const (
	MaxNotesLength        = 500
	MaxCustomerNameLength = 255
	MaxSelectedDates      = 366
)

// Форматы
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveRentalStatuses аренды, дни которых заблокированы в календаре
var ActiveRentalStatuses = []RentalStatus{
	RentalPending,
	RentalConfirmed,
	RentalActive,
}

// InactiveRentalStatuses терминальные статусы: даты аренды свободны
var InactiveRentalStatuses = []RentalStatus{
	RentalReturned,
	RentalCancelled,
}

// StatusStrings переводит список статусов в строки для SQL-фильтра
func StatusStrings(statuses []RentalStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
