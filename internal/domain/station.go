package domain

import "time"

// Station represents a battery-swap station
type Station struct {
	ID       int64
	Name     string
	Location string

	// Средняя пропускная способность станции, замен в час
	// Может быть дробной (например, 2.5)
	HourlyCapacity float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ManagerAssignment привязка менеджера к станции
type ManagerAssignment struct {
	ID        int64
	StationID int64
	ManagerID int64
	CreatedAt time.Time
}
