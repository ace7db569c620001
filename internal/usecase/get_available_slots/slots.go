package get_available_slots

import (
	"time"

	"github.com/dkurganov/BSS-BookingService/internal/domain"
)

// countBySlotStart группирует бронирования по началу слота
// Считаются только бронирования, занимающие место (CONFIRMED и COMPLETED):
// отмененные и no-show место освобождают
func countBySlotStart(bookings []*domain.Booking) map[time.Time]int {
	occupancy := make(map[time.Time]int, len(bookings))

	for _, b := range bookings {
		if !b.CountsTowardCapacity() {
			continue
		}
		occupancy[b.SlotStartUTC.UTC()]++
	}

	return occupancy
}

// overlayOccupancy накладывает занятость на таблицу слотов аллокатора
// Доступная емкость не опускается ниже нуля даже при перебронировании
func overlayOccupancy(slots []domain.Slot, occupancy map[time.Time]int) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, len(slots))

	for i, slot := range slots {
		used := occupancy[slot.StartUTC.UTC()]

		available := slot.MaxCapacity - used
		if available < 0 {
			available = 0
		}

		result[i] = domain.AvailableSlot{
			StartUTC:          slot.StartUTC,
			EndUTC:            slot.EndUTC,
			AvailableCapacity: available,
			MaxCapacity:       slot.MaxCapacity,
		}
	}

	return result
}
