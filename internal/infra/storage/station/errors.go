package station

import "errors"

var (
	// ErrStationNotFound возвращается, когда станция не найдена
	ErrStationNotFound = errors.New("station.repository: station not found")

	// ErrAssignmentNotFound возвращается, когда привязка менеджера не найдена
	ErrAssignmentNotFound = errors.New("station.repository: manager assignment not found")

	// ErrDuplicateAssignment возвращается при повторной привязке менеджера к станции
	ErrDuplicateAssignment = errors.New("station.repository: manager already assigned to station")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("station.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("station.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("station.repository: failed to scan row")
)
