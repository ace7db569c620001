package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда исходное бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrStationNotFound возвращается, когда станция не найдена
	ErrStationNotFound = errors.New("reschedule_booking: station not found")

	// ErrOutOfWindow возвращается, когда новый слот вне скользящего окна бронирования
	ErrOutOfWindow = errors.New("reschedule_booking: slot is outside the booking window")

	// ErrInvalidSlot возвращается, когда начало нового слота не совпадает
	// ни с одной границей аллокатора
	ErrInvalidSlot = errors.New("reschedule_booking: slot does not align to a slot boundary")

	// ErrSlotFull возвращается, когда емкость нового слота исчерпана
	ErrSlotFull = errors.New("reschedule_booking: slot is fully booked")

	// ErrCancelNotAllowed возвращается, когда исходное бронирование нельзя отменить:
	// не принадлежит оператору, уже терминально или начинается слишком скоро.
	// Вся операция при этом откатывается
	ErrCancelNotAllowed = errors.New("reschedule_booking: original booking cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
