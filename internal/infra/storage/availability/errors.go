package availability

import "errors"

var (
	// ErrDateTaken возвращается, когда день товара уже занят (нарушение UNIQUE(product_id, date))
	ErrDateTaken = errors.New("availability.repository: date already taken")

	// ErrConcurrentUpdate возвращается, когда параллельная транзакция изменила те же строки
	ErrConcurrentUpdate = errors.New("availability.repository: concurrent update")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
