package domain

import "time"

// Slot represents a single 15-minute booking slot produced by the capacity allocator
// Слоты никогда не сохраняются в БД - они каждый раз пересчитываются из
// hourly_capacity станции, чтобы отображаемая доступность и admission control
// всегда считали по одной и той же таблице
type Slot struct {
	StartUTC    time.Time
	EndUTC      time.Time
	MaxCapacity int
}

// AvailableSlot represents a slot overlaid with current occupancy
type AvailableSlot struct {
	StartUTC          time.Time
	EndUTC            time.Time
	AvailableCapacity int
	MaxCapacity       int
}

// IsFull returns true if the slot has no available capacity
func (s *AvailableSlot) IsFull() bool {
	return s.AvailableCapacity <= 0
}

// IsFullyAvailable returns true if no capacity is taken yet
func (s *AvailableSlot) IsFullyAvailable() bool {
	return s.AvailableCapacity == s.MaxCapacity
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *AvailableSlot) OccupancyRate() float64 {
	if s.MaxCapacity == 0 {
		return 0
	}
	occupied := s.MaxCapacity - s.AvailableCapacity
	return float64(occupied) / float64(s.MaxCapacity) * 100
}
