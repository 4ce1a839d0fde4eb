package create_booking

import "errors"

var (
	// ErrProductNotFound возвращается, когда товар не найден
	ErrProductNotFound = errors.New("create_booking: product not found")

	// ErrProductUnavailable возвращается, когда товар на обслуживании
	ErrProductUnavailable = errors.New("create_booking: product is under maintenance")

	// ErrDateInPast возвращается, когда выбран день раньше сегодняшнего
	ErrDateInPast = errors.New("create_booking: selected date is in the past")

	// ErrDatesNotAvailable возвращается, когда хотя бы один выбранный день уже занят
	ErrDatesNotAvailable = errors.New("create_booking: selected dates are not available")

	// ErrPriceMismatch возвращается, когда цена клиента расходится с рассчитанной сервером
	ErrPriceMismatch = errors.New("create_booking: total price does not match")

	// ErrTotalDaysMismatch возвращается, когда количество дней клиента не совпадает с выбранными днями
	ErrTotalDaysMismatch = errors.New("create_booking: total days does not match selected dates")

	// ErrConcurrentRequest возвращается, когда параллельный запрос создал того же пользователя
	ErrConcurrentRequest = errors.New("create_booking: concurrent request, retry")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
