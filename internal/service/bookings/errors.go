package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrCancelNotAllowed возвращается, когда отмена запрещена: бронирование не
	// найдено, принадлежит другому оператору, уже терминально или до начала слота
	// осталось меньше lead time. Причины для вызывающего намеренно не различаются
	ErrCancelNotAllowed = errors.New("booking cannot be cancelled")

	// ErrCompleteNotAllowed возвращается, когда завершение запрещено:
	// бронирование не найдено, относится к другой станции или уже не CONFIRMED
	ErrCompleteNotAllowed = errors.New("booking cannot be completed")

	// ErrAccessDenied возвращается, когда менеджер не привязан к станции
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
