package create_booking

import "errors"

var (
	// ErrStationNotFound возвращается, когда станция не найдена
	ErrStationNotFound = errors.New("create_booking: station not found")

	// ErrOutOfWindow возвращается, когда слот вне скользящего окна бронирования
	ErrOutOfWindow = errors.New("create_booking: slot is outside the booking window")

	// ErrInvalidSlot возвращается, когда начало слота не совпадает ни с одной
	// границей, сгенерированной аллокатором для текущего окна
	ErrInvalidSlot = errors.New("create_booking: slot does not align to a slot boundary")

	// ErrSlotFull возвращается, когда емкость слота исчерпана
	ErrSlotFull = errors.New("create_booking: slot is fully booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
