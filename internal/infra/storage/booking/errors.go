package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrCancelNotAllowed возвращается, когда условный UPDATE отмены не затронул строк:
	// бронирование не существует, принадлежит другому оператору, уже в терминальном
	// статусе или до начала слота осталось меньше lead time. Причины намеренно
	// не различаются
	ErrCancelNotAllowed = errors.New("booking.repository: booking cannot be cancelled")

	// ErrCompleteNotAllowed возвращается, когда условный UPDATE завершения не затронул
	// строк: бронирование не существует, относится к другой станции или уже не CONFIRMED
	ErrCompleteNotAllowed = errors.New("booking.repository: booking cannot be completed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
