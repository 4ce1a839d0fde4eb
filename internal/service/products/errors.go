package products

import "errors"

var (
	// ErrProductNotFound возвращается, когда товар не найден
	ErrProductNotFound = errors.New("product not found")

	// ErrAccessDenied возвращается, когда операцию выполняет не администратор
	ErrAccessDenied = errors.New("access denied")

	// ErrDatesTaken возвращается, когда блокируемые дни уже заняты арендой или блокировкой
	ErrDatesTaken = errors.New("dates are already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
