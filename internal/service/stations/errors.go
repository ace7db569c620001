package stations

import "errors"

var (
	// ErrStationNotFound возвращается, когда станция не найдена
	ErrStationNotFound = errors.New("station not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrNotAManager возвращается при попытке привязать к станции пользователя без роли MANAGER
	ErrNotAManager = errors.New("user is not a manager")

	// ErrAlreadyAssigned возвращается при повторной привязке менеджера к станции
	ErrAlreadyAssigned = errors.New("manager already assigned to station")

	// ErrAssignmentNotFound возвращается, когда привязка менеджера не найдена
	ErrAssignmentNotFound = errors.New("manager assignment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
