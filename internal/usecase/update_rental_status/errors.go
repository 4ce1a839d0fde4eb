package update_rental_status

import "errors"

var (
	// ErrForbidden возвращается, когда статус меняет не администратор
	ErrForbidden = errors.New("only admin can change rental status")

	// ErrInvalidStatus возвращается для неизвестного статуса
	ErrInvalidStatus = errors.New("invalid rental status")

	// ErrRentalNotFound возвращается, когда аренда не найдена
	ErrRentalNotFound = errors.New("rental not found")

	// ErrInvalidTransition возвращается при переходе, которого нет в таблице статусов
	ErrInvalidTransition = errors.New("rental status transition is not allowed")

	// ErrConcurrentUpdate возвращается, когда аренду одновременно изменили в другой транзакции
	ErrConcurrentUpdate = errors.New("rental was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("usecase: internal error")
)
