package capacity

import "errors"

var (
	// ErrInvalidCapacity возвращается при отрицательной часовой пропускной способности
	ErrInvalidCapacity = errors.New("capacity: hourly capacity must be non-negative")

	// ErrInvalidHours возвращается при неположительной длине окна
	ErrInvalidHours = errors.New("capacity: hours must be positive")
)
